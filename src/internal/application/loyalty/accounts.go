package loyalty

import (
	"errors"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// welcomeBonusDescription 註冊獎勵的流水描述
const welcomeBonusDescription = "Welcome bonus"

// openAccount 在事務中建立帳戶並發放註冊獎勵
//
// 帳戶與獎勵流水在同一事務寫入；唯一約束衝突時返回 ErrAccountAlreadyExists。
func openAccount(
	tx shared.TransactionContext,
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	userID loyalty.UserID,
	settings loyalty.Settings,
) (*loyalty.LoyaltyAccount, error) {
	account, err := loyalty.NewLoyaltyAccount(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create loyalty account: %w", err)
	}

	var entries []*loyalty.LoyaltyTransaction
	if settings.WelcomeBonusPoints > 0 {
		bonus, err := loyalty.NewPointsAmount(settings.WelcomeBonusPoints)
		if err != nil {
			return nil, fmt.Errorf("invalid welcome bonus: %w", err)
		}
		entry, err := account.Earn(bonus, loyalty.TransactionTypeSignupBonus, welcomeBonusDescription)
		if err != nil {
			return nil, fmt.Errorf("failed to grant welcome bonus: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := accounts.Save(tx, account); err != nil {
		if errors.Is(err, loyalty.ErrAccountAlreadyExists) {
			return nil, fmt.Errorf("user already has an account: %w", err)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	for _, entry := range entries {
		if err := ledger.Append(tx, entry); err != nil {
			return nil, fmt.Errorf("failed to append ledger entry: %w", err)
		}
	}

	return account, nil
}

// saveChanges 更新帳戶並寫入對應的流水
func saveChanges(
	tx shared.TransactionContext,
	accounts loyalty.AccountRepository,
	ledger loyalty.TransactionRepository,
	account *loyalty.LoyaltyAccount,
	entry *loyalty.LoyaltyTransaction,
) error {
	if err := accounts.Update(tx, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if entry == nil {
		return nil
	}
	if err := ledger.Append(tx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}
