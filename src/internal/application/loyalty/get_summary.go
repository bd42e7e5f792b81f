package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// defaultRecentLimit 摘要預設顯示的流水筆數
const defaultRecentLimit = 10

// GetSummaryQuery 查詢積分摘要
type GetSummaryQuery struct {
	UserID      string
	RecentLimit int
}

// GetSummaryResult 積分摘要（帳戶頁）
type GetSummaryResult struct {
	UserID     string
	HasAccount bool
	Balance    BalanceDTO
	Recent     []TransactionDTO
}

// GetSummaryUseCase 查詢餘額、等級進度與最近流水
//
// 帳戶與流水在同一個綁定 ctx 的事務中讀取
type GetSummaryUseCase struct {
	accounts  loyalty.AccountRepository
	ledger    loyalty.TransactionRepository
	txManager shared.TransactionManager
}

// NewGetSummaryUseCase 創建 Use Case 實例
func NewGetSummaryUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	txManager shared.TransactionManager,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{accounts: accounts, ledger: ledger, txManager: txManager}
}

// Execute 執行查詢
//
// 尚未建立帳戶時返回 bronze / 0 點的空摘要，而不是錯誤。
func (uc *GetSummaryUseCase) Execute(ctx context.Context, query GetSummaryQuery) (*GetSummaryResult, error) {
	userID, err := loyalty.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	limit := query.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var (
		account *loyalty.LoyaltyAccount
		entries []*loyalty.LoyaltyTransaction
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		account, err = uc.accounts.FindByUserID(tx, userID)
		if err != nil {
			return err
		}
		entries, err = uc.ledger.ListByUserID(tx, userID, limit)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	if errors.Is(err, loyalty.ErrAccountNotFound) {
		return &GetSummaryResult{
			UserID:  userID.String(),
			Balance: emptyBalance(),
			Recent:  []TransactionDTO{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	recent := make([]TransactionDTO, 0, len(entries))
	for _, entry := range entries {
		recent = append(recent, toTransactionDTO(entry))
	}

	return &GetSummaryResult{
		UserID:     userID.String(),
		HasAccount: true,
		Balance:    toBalanceDTO(account),
		Recent:     recent,
	}, nil
}
