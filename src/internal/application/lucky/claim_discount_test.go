package lucky

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimFixture struct {
	discounts *MockDiscountRepository
	claims    *MockClaimRepository
	txManager *MockTransactionManager
	publisher *MockEventPublisher
	useCase   *ClaimDiscountUseCase
}

func newClaimFixture(discounts ...lucky.Discount) *claimFixture {
	f := &claimFixture{
		discounts: NewMockDiscountRepository(discounts...),
		claims:    NewMockClaimRepository(),
		txManager: &MockTransactionManager{},
		publisher: &MockEventPublisher{},
	}
	f.useCase = NewClaimDiscountUseCase(
		f.discounts, f.claims, f.txManager, f.publisher,
		shared.FixedClock{At: testNow}, discardLogger(),
	)
	return f
}

func claimCommand(userID lucky.UserID, discount lucky.Discount) ClaimDiscountCommand {
	session := testNow.Add(-30 * time.Minute)
	n := lucky.DeriveLuckyNumber(lucky.Seed{UserID: userID, SessionStartedAt: session})
	return ClaimDiscountCommand{
		UserID:           userID.String(),
		Email:            "asha@example.com",
		SessionStartedAt: session,
		DiscountID:       discount.ID.String(),
		LuckyNumber:      n.Int(),
	}
}

// Test 1: 領取成功並發布事件
func TestClaimDiscountUseCase_Success(t *testing.T) {
	// Arrange
	discount := everyoneWins(15)
	f := newClaimFixture(discount)
	userID := lucky.NewUserID()
	cmd := claimCommand(userID, discount)

	// Act
	result, err := f.useCase.Execute(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "DHAN15", result.DiscountCode)
	assert.Equal(t, cmd.LuckyNumber, result.LuckyNumber)
	assert.Equal(t, discount.ExpiresAt, result.ExpiresAt)
	require.Len(t, f.publisher.Published, 1)
	assert.Equal(t, lucky.EventTypeDiscountClaimed, f.publisher.Published[0].EventType())
}

// Test 2: 同一使用者重複領取同一折扣
func TestClaimDiscountUseCase_SecondClaimFailsWithAlreadyClaimed(t *testing.T) {
	// Arrange
	discount := everyoneWins(15)
	f := newClaimFixture(discount)
	cmd := claimCommand(lucky.NewUserID(), discount)
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	// Act
	result, err := f.useCase.Execute(context.Background(), cmd)

	// Assert
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, lucky.ErrAlreadyClaimed))
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "DHAN15", domainErr.Context["discount_code"])
	assert.Len(t, f.publisher.Published, 1, "no event for the rejected claim")
	assert.Equal(t, 2, f.claims.SaveCallCount)
	assert.Equal(t, 3, f.txManager.InTransactionCallCount, "existing claim is looked up in its own transaction")
}

// Test 3: 不同使用者各自可領取
func TestClaimDiscountUseCase_DifferentUsers(t *testing.T) {
	discount := everyoneWins(15)
	f := newClaimFixture(discount)

	_, err := f.useCase.Execute(context.Background(), claimCommand(lucky.NewUserID(), discount))
	require.NoError(t, err)
	_, err = f.useCase.Execute(context.Background(), claimCommand(lucky.NewUserID(), discount))
	require.NoError(t, err)

	assert.Len(t, f.claims.claims, 2)
}

// Test 4: 活動已過期
func TestClaimDiscountUseCase_Expired(t *testing.T) {
	// Arrange
	discount := everyoneWins(15)
	discount.ExpiresAt = testNow.Add(-time.Minute)
	f := newClaimFixture(discount)

	// Act
	_, err := f.useCase.Execute(context.Background(), claimCommand(lucky.NewUserID(), discount))

	// Assert
	assert.ErrorIs(t, err, lucky.ErrExpired)
	assert.Equal(t, 0, f.claims.SaveCallCount)
}

// Test 5: 偽造的幸運號碼
func TestClaimDiscountUseCase_ForgedNumber(t *testing.T) {
	// Arrange
	discount := everyoneWins(15)
	f := newClaimFixture(discount)
	cmd := claimCommand(lucky.NewUserID(), discount)
	cmd.LuckyNumber = cmd.LuckyNumber%100 + 1

	// Act
	_, err := f.useCase.Execute(context.Background(), cmd)

	// Assert
	assert.ErrorIs(t, err, lucky.ErrNotEligible)
}

// Test 6: 折扣不存在
func TestClaimDiscountUseCase_DiscountNotFound(t *testing.T) {
	f := newClaimFixture()
	_, err := f.useCase.Execute(context.Background(), claimCommand(lucky.NewUserID(), everyoneWins(10)))
	assert.ErrorIs(t, err, lucky.ErrDiscountNotFound)
}

// Test 7: 號碼超出範圍，不開啟事務
func TestClaimDiscountUseCase_InvalidNumber(t *testing.T) {
	discount := everyoneWins(15)
	f := newClaimFixture(discount)
	cmd := claimCommand(lucky.NewUserID(), discount)
	cmd.LuckyNumber = 0

	_, err := f.useCase.Execute(context.Background(), cmd)

	assert.ErrorIs(t, err, lucky.ErrInvalidLuckyNumber)
	assert.Equal(t, 0, f.txManager.InTransactionCallCount)
}
