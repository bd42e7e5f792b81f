package loyalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// CreateAccount Use Case
// ===========================

// CreateAccountCommand 建立積分帳戶的命令（註冊完成時觸發）
type CreateAccountCommand struct {
	UserID string
}

// CreateAccountResult 建立積分帳戶的結果
type CreateAccountResult struct {
	AccountID  string
	UserID     string
	BonusGiven int
	Balance    BalanceDTO
	CreatedAt  time.Time
}

// CreateAccountUseCase 建立積分帳戶 Use Case
//
// 職責：
// 1. 驗證 UserID
// 2. 積分計畫停用時拒絕
// 3. 建立帳戶並發放註冊獎勵（同一事務）
// 4. 提交後發布事件
//
// 並發安全：依賴 user_id 唯一約束，不做 check-then-insert。
type CreateAccountUseCase struct {
	accounts  loyalty.AccountRepository
	ledger    loyalty.TransactionRepository
	settings  loyalty.SettingsRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewCreateAccountUseCase 創建 Use Case 實例
func NewCreateAccountUseCase(
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	settings loyalty.SettingsRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accounts:  accounts,
		ledger:    ledger,
		settings:  settings,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute 執行建立積分帳戶
//
// 錯誤處理：
// - ErrInvalidUserID：UserID 格式無效
// - ErrProgramDisabled：積分計畫停用
// - ErrAccountAlreadyExists：已有帳戶
func (uc *CreateAccountUseCase) Execute(ctx context.Context, cmd CreateAccountCommand) (*CreateAccountResult, error) {
	userID, err := loyalty.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	var account *loyalty.LoyaltyAccount
	var bonus int
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err := uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load loyalty settings: %w", err)
		}
		if !settings.IsEnabled {
			return loyalty.ErrProgramDisabled
		}

		account, err = openAccount(tx, uc.accounts, uc.ledger, userID, settings)
		if err != nil {
			return err
		}
		bonus = settings.WelcomeBonusPoints
		return nil
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, account.PullEvents())

	return &CreateAccountResult{
		AccountID:  account.AccountID().String(),
		UserID:     account.UserID().String(),
		BonusGiven: bonus,
		Balance:    toBalanceDTO(account),
		CreatedAt:  account.CreatedAt(),
	}, nil
}
