package loyalty

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ForfeitPointsCommand 歸零積分的命令（管理端）
type ForfeitPointsCommand struct {
	UserID string
	Reason string
}

// ForfeitPointsResult 歸零結果
type ForfeitPointsResult struct {
	PointsForfeited int
	Balance         BalanceDTO
}

// ForfeitPointsUseCase 歸零積分 Use Case
//
// 帳戶不刪除；等級依累積積分保留。
type ForfeitPointsUseCase struct {
	accounts  loyalty.AccountRepository
	ledger    loyalty.TransactionRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewForfeitPointsUseCase 創建 Use Case 實例
func NewForfeitPointsUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *ForfeitPointsUseCase {
	return &ForfeitPointsUseCase{
		accounts:  accounts,
		ledger:    ledger,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute 執行歸零
func (uc *ForfeitPointsUseCase) Execute(ctx context.Context, cmd ForfeitPointsCommand) (*ForfeitPointsResult, error) {
	userID, err := loyalty.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		reason = "Points forfeited by store"
	}

	var (
		account   *loyalty.LoyaltyAccount
		forfeited int
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		account, err = uc.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return fmt.Errorf("failed to find account: %w", err)
		}

		entry, err := account.Forfeit(reason)
		if err != nil {
			return fmt.Errorf("failed to forfeit points: %w", err)
		}
		if entry == nil {
			return nil
		}
		forfeited = -entry.Points()
		return saveChanges(tx, uc.accounts, uc.ledger, account, entry)
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, account.PullEvents())

	return &ForfeitPointsResult{
		PointsForfeited: forfeited,
		Balance:         toBalanceDTO(account),
	}, nil
}
