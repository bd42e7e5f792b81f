package loyalty

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// LoyaltyAccount 聚合根
// ===========================

// LoyaltyAccount 會員積分帳戶聚合根
//
// 業務不變條件：
// - TotalPoints >= 0（累積獲得的積分總數，決定等級）
// - RedeemedPoints >= 0（累積折抵 / 歸零的積分總數）
// - RedeemedPoints <= TotalPoints
// - AvailablePoints = TotalPoints - RedeemedPoints（派生值）
//
// 生命週期：首次消費或註冊獎勵時建立；帳戶不刪除，只會被歸零（Forfeit）。
//
// 每個命令方法都返回一筆 LoyaltyTransaction，調用者必須與帳戶在同一事務中寫入，
// 這樣流水總和才會永遠等於 AvailablePoints（見 Reconcile）。
type LoyaltyAccount struct {
	accountID AccountID
	userID    UserID

	totalPoints    PointsAmount
	redeemedPoints PointsAmount

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號

	events []shared.DomainEvent
}

// NewLoyaltyAccount 創建新的積分帳戶（初始積分為 0）
func NewLoyaltyAccount(userID UserID) (*LoyaltyAccount, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "userID cannot be empty",
		)
	}

	now := time.Now()
	account := &LoyaltyAccount{
		accountID:      NewAccountID(),
		userID:         userID,
		totalPoints:    newPointsAmountUnchecked(0),
		redeemedPoints: newPointsAmountUnchecked(0),
		createdAt:      now,
		updatedAt:      now,
		version:        1,
		events:         make([]shared.DomainEvent, 0),
	}

	account.addEvent(NewAccountCreatedEvent(account.accountID, userID))

	return account, nil
}

// ===========================
// 查詢方法
// ===========================

// AccountID 獲取帳戶 ID
func (a *LoyaltyAccount) AccountID() AccountID {
	return a.accountID
}

// UserID 獲取使用者 ID
func (a *LoyaltyAccount) UserID() UserID {
	return a.userID
}

// TotalPoints 獲取累積獲得積分
func (a *LoyaltyAccount) TotalPoints() PointsAmount {
	return a.totalPoints
}

// RedeemedPoints 獲取累積使用積分
func (a *LoyaltyAccount) RedeemedPoints() PointsAmount {
	return a.redeemedPoints
}

// CreatedAt 獲取創建時間
func (a *LoyaltyAccount) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt 獲取最後更新時間
func (a *LoyaltyAccount) UpdatedAt() time.Time {
	return a.updatedAt
}

// Version 最後一次讀取或寫入時的版本號（用於樂觀鎖）
func (a *LoyaltyAccount) Version() int {
	return a.version
}

// AvailablePoints 可用積分（派生值）
func (a *LoyaltyAccount) AvailablePoints() PointsAmount {
	// 不變條件保證 totalPoints >= redeemedPoints
	available, _ := a.totalPoints.Subtract(a.redeemedPoints)
	return available
}

// Tier 當前等級
func (a *LoyaltyAccount) Tier() Tier {
	return a.Progress().Tier
}

// Progress 當前等級與升級進度（依累積積分，折抵不會降級）
func (a *LoyaltyAccount) Progress() TierProgress {
	return ComputeTier(a.totalPoints.Value())
}

// ===========================
// 事件管理
// ===========================

func (a *LoyaltyAccount) addEvent(event shared.DomainEvent) {
	a.events = append(a.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (a *LoyaltyAccount) PullEvents() []shared.DomainEvent {
	events := a.events
	a.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法
// ===========================

// Earn 獲得積分
//
// 參數：
//   amount - 獲得的積分數量
//   txType - 必須是增加積分的類型（purchase / signup_bonus / adjustment）
//   description - 流水描述（例如「Order #1042」）
//
// 返回：
//   *LoyaltyTransaction - 對應的正數流水
//   error - 類型不是加點類型時返回 ErrInvalidTransactionType
func (a *LoyaltyAccount) Earn(
	amount PointsAmount,
	txType TransactionType,
	description string,
) (*LoyaltyTransaction, error) {
	if !txType.IsEarning() {
		return nil, ErrInvalidTransactionType.WithContext(
			"type", string(txType),
			"reason", "not an earning transaction type",
		)
	}

	a.totalPoints = a.totalPoints.Add(amount)
	a.updatedAt = time.Now()

	entry := newLoyaltyTransaction(a.userID, amount.Value(), txType, description, a.updatedAt)
	a.addEvent(NewPointsEarnedEvent(a.accountID, a.userID, amount, txType, description))

	return entry, nil
}

// Redeem 結帳折抵積分
//
// 業務規則：
// - amount 必須 > 0
// - amount 不能超過可用積分（ErrInsufficientPoints）
func (a *LoyaltyAccount) Redeem(amount PointsAmount, description string) (*LoyaltyTransaction, error) {
	if amount.IsZero() {
		return nil, ErrInvalidPointsAmount.WithContext("reason", "redeem amount must be positive")
	}

	available := a.AvailablePoints()
	if amount.GreaterThan(available) {
		return nil, ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", available.Value(),
		)
	}

	a.redeemedPoints = a.redeemedPoints.Add(amount)
	a.updatedAt = time.Now()

	entry := newLoyaltyTransaction(a.userID, -amount.Value(), TransactionTypeRedemption, description, a.updatedAt)
	a.addEvent(NewPointsRedeemedEvent(a.accountID, a.userID, amount, description))

	return entry, nil
}

// Forfeit 將可用積分歸零（帳戶本身不刪除，等級不變）
//
// 無可用積分時返回 (nil, nil)，不產生流水
func (a *LoyaltyAccount) Forfeit(reason string) (*LoyaltyTransaction, error) {
	available := a.AvailablePoints()
	if available.IsZero() {
		return nil, nil
	}

	a.redeemedPoints = a.redeemedPoints.Add(available)
	a.updatedAt = time.Now()

	entry := newLoyaltyTransaction(a.userID, -available.Value(), TransactionTypeForfeit, reason, a.updatedAt)
	a.addEvent(NewPointsForfeitedEvent(a.accountID, a.userID, available, reason))

	return entry, nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructLoyaltyAccount 從持久化存儲重建聚合根
//
// 不發布事件；仍然驗證不變條件，防止損壞資料進入領域層
func ReconstructLoyaltyAccount(
	accountID AccountID,
	userID UserID,
	totalPoints int,
	redeemedPoints int,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*LoyaltyAccount, error) {
	if accountID.IsEmpty() {
		return nil, ErrInvalidAccountID.WithContext("reason", "invalid account ID in database")
	}
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext("reason", "invalid user ID in database")
	}

	total, err := NewPointsAmount(totalPoints)
	if err != nil {
		return nil, ErrCorruptedAccount.WithContext("total_points", totalPoints)
	}
	redeemed, err := NewPointsAmount(redeemedPoints)
	if err != nil {
		return nil, ErrCorruptedAccount.WithContext("redeemed_points", redeemedPoints)
	}
	if redeemed.GreaterThan(total) {
		return nil, ErrCorruptedAccount.WithContext(
			"total_points", totalPoints,
			"redeemed_points", redeemedPoints,
		)
	}

	return &LoyaltyAccount{
		accountID:      accountID,
		userID:         userID,
		totalPoints:    total,
		redeemedPoints: redeemed,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
		events:         make([]shared.DomainEvent, 0),
	}, nil
}

// AdvanceVersion 倉儲以 version 條件更新成功後推進版本號
func (a *LoyaltyAccount) AdvanceVersion() {
	a.version++
}
