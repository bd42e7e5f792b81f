package loyalty

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RedeemPointsCommand 結帳折抵積分的命令
type RedeemPointsCommand struct {
	UserID      string
	OrderNumber string
	Points      int
	OrderTotal  decimal.Decimal
}

// RedeemPointsResult 折抵結果
type RedeemPointsResult struct {
	PointsRedeemed int
	Discount       decimal.Decimal
	Balance        BalanceDTO
}

// RedeemPointsUseCase 結帳折抵 Use Case
//
// 在事務中重新試算，確保折抵的積分與金額以寫入當下的餘額為準。
type RedeemPointsUseCase struct {
	accounts    loyalty.AccountRepository
	ledger      loyalty.TransactionRepository
	settings    loyalty.SettingsRepository
	calculation *loyalty.PointsCalculationService
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	logger      *slog.Logger
}

// NewRedeemPointsUseCase 創建 Use Case 實例
func NewRedeemPointsUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	settings loyalty.SettingsRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *RedeemPointsUseCase {
	return &RedeemPointsUseCase{
		accounts:    accounts,
		ledger:      ledger,
		settings:    settings,
		calculation: loyalty.NewPointsCalculationService(),
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute 執行折抵
func (uc *RedeemPointsUseCase) Execute(ctx context.Context, cmd RedeemPointsCommand) (*RedeemPointsResult, error) {
	userID, err := loyalty.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	requested, err := loyalty.NewPointsAmount(cmd.Points)
	if err != nil {
		return nil, err
	}

	var (
		account *loyalty.LoyaltyAccount
		quote   loyalty.RedemptionQuote
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err := uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load loyalty settings: %w", err)
		}
		if !settings.IsEnabled {
			return loyalty.ErrProgramDisabled
		}

		account, err = uc.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return fmt.Errorf("failed to find account: %w", err)
		}

		quote, err = uc.calculation.QuoteRedemption(account.AvailablePoints(), requested, cmd.OrderTotal, settings)
		if err != nil {
			return err
		}

		entry, err := account.Redeem(quote.Points, "Redeemed on "+orderDescription(cmd.OrderNumber))
		if err != nil {
			return fmt.Errorf("failed to redeem points: %w", err)
		}
		return saveChanges(tx, uc.accounts, uc.ledger, account, entry)
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, account.PullEvents())

	return &RedeemPointsResult{
		PointsRedeemed: quote.Points.Value(),
		Discount:       quote.Discount,
		Balance:        toBalanceDTO(account),
	}, nil
}
