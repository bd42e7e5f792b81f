package loyalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ReconcileAccountQuery 對帳查詢（管理端）
type ReconcileAccountQuery struct {
	UserID string
}

// ReconcileAccountResult 對帳結果
type ReconcileAccountResult struct {
	UserID          string
	LedgerSum       int
	AvailablePoints int
	EntryCount      int
	Balanced        bool
}

// ReconcileAccountUseCase 比對流水總和與帳戶可用積分
//
// 先鎖定帳戶列再讀取流水：寫入積分的事務也會鎖定同一列，
// 因此讀到的帳戶與流水屬於同一個已提交的狀態。
type ReconcileAccountUseCase struct {
	accounts  loyalty.AccountRepository
	ledger    loyalty.TransactionRepository
	txManager shared.TransactionManager
	logger    *slog.Logger
}

// NewReconcileAccountUseCase 創建 Use Case 實例
func NewReconcileAccountUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	txManager shared.TransactionManager,
	logger *slog.Logger,
) *ReconcileAccountUseCase {
	return &ReconcileAccountUseCase{accounts: accounts, ledger: ledger, txManager: txManager, logger: logger}
}

// Execute 執行對帳
//
// 不一致時不返回錯誤，以 Balanced=false 表示並記錄 error 日誌
func (uc *ReconcileAccountUseCase) Execute(ctx context.Context, query ReconcileAccountQuery) (*ReconcileAccountResult, error) {
	userID, err := loyalty.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	var (
		account *loyalty.LoyaltyAccount
		entries []*loyalty.LoyaltyTransaction
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		account, err = uc.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return fmt.Errorf("failed to find account: %w", err)
		}
		entries, err = uc.ledger.ListByUserID(tx, userID, 0)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ReconcileAccountResult{
		UserID:          userID.String(),
		LedgerSum:       loyalty.LedgerSum(entries),
		AvailablePoints: account.AvailablePoints().Value(),
		EntryCount:      len(entries),
		Balanced:        true,
	}

	if err := loyalty.Reconcile(account, entries); err != nil {
		if !errors.Is(err, loyalty.ErrLedgerMismatch) {
			return nil, err
		}
		result.Balanced = false
		if uc.logger != nil {
			uc.logger.Error("loyalty ledger mismatch",
				slog.String("user_id", result.UserID),
				slog.Int("ledger_sum", result.LedgerSum),
				slog.Int("available_points", result.AvailablePoints),
			)
		}
	}

	return result, nil
}
