package loyalty

import (
	"context"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteRedemptionQuery 結帳折抵試算
type QuoteRedemptionQuery struct {
	UserID     string
	Points     int // 客人想使用的積分
	OrderTotal decimal.Decimal
}

// QuoteRedemptionResult 試算結果
type QuoteRedemptionResult struct {
	PointsUsed      int
	Discount        decimal.Decimal
	AvailablePoints int
}

// QuoteRedemptionUseCase 折抵試算 Use Case（唯讀）
type QuoteRedemptionUseCase struct {
	accounts    loyalty.AccountRepository
	settings    loyalty.SettingsRepository
	txManager   shared.TransactionManager
	calculation *loyalty.PointsCalculationService
}

// NewQuoteRedemptionUseCase 創建 Use Case 實例
func NewQuoteRedemptionUseCase(
	accounts loyalty.AccountRepository,
	settings loyalty.SettingsRepository,
	txManager shared.TransactionManager,
) *QuoteRedemptionUseCase {
	return &QuoteRedemptionUseCase{
		accounts:    accounts,
		settings:    settings,
		txManager:   txManager,
		calculation: loyalty.NewPointsCalculationService(),
	}
}

// Execute 執行試算
//
// 錯誤處理：
// - ErrProgramDisabled、ErrAccountNotFound
// - ErrBelowMinimumRedemption：可用或可折抵的積分低於門檻
func (uc *QuoteRedemptionUseCase) Execute(ctx context.Context, query QuoteRedemptionQuery) (*QuoteRedemptionResult, error) {
	userID, err := loyalty.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	requested, err := loyalty.NewPointsAmount(query.Points)
	if err != nil {
		return nil, err
	}

	var (
		settings loyalty.Settings
		account  *loyalty.LoyaltyAccount
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err = uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load loyalty settings: %w", err)
		}
		if !settings.IsEnabled {
			return loyalty.ErrProgramDisabled
		}
		account, err = uc.accounts.FindByUserID(tx, userID)
		if err != nil {
			return fmt.Errorf("failed to find account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	quote, err := uc.calculation.QuoteRedemption(account.AvailablePoints(), requested, query.OrderTotal, settings)
	if err != nil {
		return nil, err
	}

	return &QuoteRedemptionResult{
		PointsUsed:      quote.Points.Value(),
		Discount:        quote.Discount,
		AvailablePoints: account.AvailablePoints().Value(),
	}, nil
}
