package loyalty

import "time"

// ===========================
// LoyaltyTransaction 積分流水（只增不改）
// ===========================

// LoyaltyTransaction 積分流水
//
// points 為有號整數：正數 = 獲得，負數 = 折抵 / 歸零。
// 同一使用者所有流水的總和必須等於帳戶的 AvailablePoints。
type LoyaltyTransaction struct {
	id              TransactionID
	userID          UserID
	points          int
	description     string
	transactionType TransactionType
	createdAt       time.Time
}

func newLoyaltyTransaction(
	userID UserID,
	points int,
	txType TransactionType,
	description string,
	createdAt time.Time,
) *LoyaltyTransaction {
	return &LoyaltyTransaction{
		id:              NewTransactionID(),
		userID:          userID,
		points:          points,
		description:     description,
		transactionType: txType,
		createdAt:       createdAt,
	}
}

// ReconstructLoyaltyTransaction 從資料庫重建流水
func ReconstructLoyaltyTransaction(
	id TransactionID,
	userID UserID,
	points int,
	description string,
	txType TransactionType,
	createdAt time.Time,
) *LoyaltyTransaction {
	return &LoyaltyTransaction{
		id:              id,
		userID:          userID,
		points:          points,
		description:     description,
		transactionType: txType,
		createdAt:       createdAt,
	}
}

func (t *LoyaltyTransaction) ID() TransactionID { return t.id }
func (t *LoyaltyTransaction) UserID() UserID { return t.userID }
func (t *LoyaltyTransaction) Points() int { return t.points }
func (t *LoyaltyTransaction) Description() string { return t.description }
func (t *LoyaltyTransaction) Type() TransactionType { return t.transactionType }
func (t *LoyaltyTransaction) CreatedAt() time.Time { return t.createdAt }

// ===========================
// 對帳
// ===========================

// LedgerSum 流水總和
func LedgerSum(entries []*LoyaltyTransaction) int {
	sum := 0
	for _, e := range entries {
		sum += e.points
	}
	return sum
}

// Reconcile 驗證流水總和與帳戶可用積分一致
//
// 返回 ErrLedgerMismatch（含 ledger_sum / available_points）或 nil
func Reconcile(account *LoyaltyAccount, entries []*LoyaltyTransaction) error {
	sum := LedgerSum(entries)
	available := account.AvailablePoints().Value()
	if sum != available {
		return ErrLedgerMismatch.WithContext(
			"user_id", account.UserID().String(),
			"ledger_sum", sum,
			"available_points", available,
		)
	}
	return nil
}
