package loyalty

import (
	"context"
	"errors"
	"testing"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// CreateAccount Use Case 測試
// ===========================

// Test 1: 建立帳戶並發放註冊獎勵
func TestCreateAccountUseCase_Success(t *testing.T) {
	// Arrange
	f := newFixture()
	useCase := NewCreateAccountUseCase(f.accounts, f.ledger, f.settings, f.txManager, f.publisher, nil)
	userID := loyalty.NewUserID()

	// Act
	result, err := useCase.Execute(context.Background(), CreateAccountCommand{UserID: userID.String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, userID.String(), result.UserID)
	assert.Equal(t, 50, result.BonusGiven)
	assert.Equal(t, 50, result.Balance.AvailablePoints)
	assert.Equal(t, "bronze", result.Balance.Tier)
	assert.Equal(t, 1, f.accounts.SaveCallCount)
	assert.Equal(t, 1, f.ledger.AppendCallCount)
	assert.Equal(t, 1, f.txManager.InTransactionCallCount)
	assert.Equal(t, []string{loyalty.EventTypeAccountCreated, loyalty.EventTypePointsEarned}, f.publisher.Types())
}

// Test 2: 已有帳戶
func TestCreateAccountUseCase_AlreadyExists(t *testing.T) {
	// Arrange
	f := newFixture()
	userID := f.seedAccount(100, 0)
	useCase := NewCreateAccountUseCase(f.accounts, f.ledger, f.settings, f.txManager, f.publisher, nil)

	// Act
	result, err := useCase.Execute(context.Background(), CreateAccountCommand{UserID: userID.String()})

	// Assert
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, loyalty.ErrAccountAlreadyExists), "error should wrap ErrAccountAlreadyExists")
	assert.Empty(t, f.publisher.Published)
}

// Test 3: 無效 UserID，不開啟事務
func TestCreateAccountUseCase_InvalidUserID(t *testing.T) {
	// Arrange
	f := newFixture()
	useCase := NewCreateAccountUseCase(f.accounts, f.ledger, f.settings, f.txManager, f.publisher, nil)

	// Act
	_, err := useCase.Execute(context.Background(), CreateAccountCommand{UserID: "not-a-uuid"})

	// Assert
	assert.ErrorIs(t, err, loyalty.ErrInvalidUserID)
	assert.Equal(t, 0, f.txManager.InTransactionCallCount)
}

// Test 4: 積分計畫停用
func TestCreateAccountUseCase_ProgramDisabled(t *testing.T) {
	// Arrange
	f := newFixture()
	f.settings.settings.IsEnabled = false
	useCase := NewCreateAccountUseCase(f.accounts, f.ledger, f.settings, f.txManager, f.publisher, nil)

	// Act
	_, err := useCase.Execute(context.Background(), CreateAccountCommand{UserID: loyalty.NewUserID().String()})

	// Assert
	assert.ErrorIs(t, err, loyalty.ErrProgramDisabled)
	assert.Equal(t, 0, f.accounts.SaveCallCount)
}

// Test 5: 沒有註冊獎勵時不寫流水
func TestCreateAccountUseCase_NoWelcomeBonus(t *testing.T) {
	// Arrange
	f := newFixture()
	f.settings.settings.WelcomeBonusPoints = 0
	useCase := NewCreateAccountUseCase(f.accounts, f.ledger, f.settings, f.txManager, f.publisher, nil)

	// Act
	result, err := useCase.Execute(context.Background(), CreateAccountCommand{UserID: loyalty.NewUserID().String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance.AvailablePoints)
	assert.Equal(t, 0, f.ledger.AppendCallCount)
}
