package loyalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// EarnPoints Use Case
// ===========================

// EarnPointsCommand 消費累積積分的命令（訂單付款完成時觸發）
type EarnPointsCommand struct {
	UserID      string
	OrderNumber string
	Amount      decimal.Decimal // 訂單實付金額（盧比）
}

// EarnPointsResult 累積積分的結果
type EarnPointsResult struct {
	PointsEarned   int
	AccountCreated bool
	TierUpgraded   bool
	Balance        BalanceDTO
}

// EarnPointsUseCase 消費累積積分 Use Case
//
// 第一次符合資格的消費會同時建立帳戶（含註冊獎勵）。
// 計算結果為 0 點時不寫入任何資料。
type EarnPointsUseCase struct {
	accounts    loyalty.AccountRepository
	ledger      loyalty.TransactionRepository
	settings    loyalty.SettingsRepository
	calculation *loyalty.PointsCalculationService
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	logger      *slog.Logger
}

// NewEarnPointsUseCase 創建 Use Case 實例
func NewEarnPointsUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	settings loyalty.SettingsRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *EarnPointsUseCase {
	return &EarnPointsUseCase{
		accounts:    accounts,
		ledger:      ledger,
		settings:    settings,
		calculation: loyalty.NewPointsCalculationService(),
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute 執行累積積分
//
// 執行流程：
// 1. 驗證 UserID、金額
// 2. 讀取設定，計畫停用 → ErrProgramDisabled
// 3. 計算積分；0 點直接返回
// 4. 查詢帳戶，不存在則建立
// 5. Earn + 更新帳戶 + 寫入流水（同一事務）
// 6. 提交後發布事件
func (uc *EarnPointsUseCase) Execute(ctx context.Context, cmd EarnPointsCommand) (*EarnPointsResult, error) {
	userID, err := loyalty.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	if cmd.Amount.IsNegative() {
		return nil, loyalty.ErrInvalidPointsAmount.WithContext("amount", cmd.Amount.String())
	}

	var (
		account *loyalty.LoyaltyAccount
		result  EarnPointsResult
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err := uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load loyalty settings: %w", err)
		}
		if !settings.IsEnabled {
			return loyalty.ErrProgramDisabled
		}

		earned, err := uc.calculation.PointsForPurchase(cmd.Amount, settings)
		if err != nil {
			return fmt.Errorf("failed to calculate points: %w", err)
		}

		account, err = uc.accounts.FindByUserIDForUpdate(tx, userID)
		switch {
		case errors.Is(err, loyalty.ErrAccountNotFound):
			if earned.IsZero() {
				return nil
			}
			account, err = openAccount(tx, uc.accounts, uc.ledger, userID, settings)
			if err != nil {
				return err
			}
			result.AccountCreated = true
		case err != nil:
			return fmt.Errorf("failed to find account: %w", err)
		}

		if earned.IsZero() {
			return nil
		}

		tierBefore := account.Tier()
		entry, err := account.Earn(earned, loyalty.TransactionTypePurchase, orderDescription(cmd.OrderNumber))
		if err != nil {
			return fmt.Errorf("failed to earn points: %w", err)
		}
		if err := saveChanges(tx, uc.accounts, uc.ledger, account, entry); err != nil {
			return err
		}

		result.PointsEarned = earned.Value()
		result.TierUpgraded = account.Tier() != tierBefore
		return nil
	})
	if err != nil {
		return nil, err
	}

	if account != nil {
		application.PublishEvents(uc.publisher, uc.logger, account.PullEvents())
		result.Balance = toBalanceDTO(account)
	} else {
		result.Balance = emptyBalance()
	}
	return &result, nil
}

func orderDescription(orderNumber string) string {
	if orderNumber == "" {
		return "Purchase"
	}
	return "Order #" + orderNumber
}

// emptyBalance 尚未建立帳戶時的餘額
func emptyBalance() BalanceDTO {
	progress := loyalty.ComputeTier(0)
	return BalanceDTO{
		Tier:            string(progress.Tier),
		NextTier:        string(progress.NextTier),
		PointsToNext:    progress.PointsToNext,
		ProgressPercent: progress.ProgressPercent,
	}
}
