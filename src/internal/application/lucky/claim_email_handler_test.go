package lucky

import (
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimedEvent(t *testing.T, email string) shared.DomainEvent {
	t.Helper()
	discount := everyoneWins(15)
	seed := lucky.Seed{UserID: lucky.NewUserID(), SessionStartedAt: testNow}
	claim, err := lucky.NewClaim(discount, lucky.Claimant{Seed: seed, Email: email}, lucky.DeriveLuckyNumber(seed), testNow)
	require.NoError(t, err)
	return claim.PullEvents()[0]
}

// Test 1: 寄送通知信
func TestClaimEmailHandler_SendsEmail(t *testing.T) {
	// Arrange
	invoker := &MockFunctionInvoker{}
	handler := NewClaimEmailHandler(invoker, time.Second, discardLogger())

	// Act
	err := handler.Handle(claimedEvent(t, "meera@example.com"))

	// Assert
	require.NoError(t, err)
	require.Len(t, invoker.Calls, 1)
	assert.Equal(t, LuckyDiscountEmailFunction, invoker.Calls[0].Name)
	payload, ok := invoker.Calls[0].Payload.(luckyDiscountEmail)
	require.True(t, ok)
	assert.Equal(t, "meera@example.com", payload.To)
	assert.Equal(t, "DHAN15", payload.DiscountCode)
}

// Test 2: 寄送失敗只記錄日誌
func TestClaimEmailHandler_FailureIsSwallowed(t *testing.T) {
	invoker := &MockFunctionInvoker{Err: shared.ErrGatewayUnavailable.WithCause(errors.New("502"))}
	handler := NewClaimEmailHandler(invoker, time.Second, discardLogger())

	err := handler.Handle(claimedEvent(t, "meera@example.com"))

	assert.NoError(t, err)
	assert.Len(t, invoker.Calls, 1)
}

// Test 3: 沒有 email 不寄送
func TestClaimEmailHandler_NoEmail(t *testing.T) {
	invoker := &MockFunctionInvoker{}
	handler := NewClaimEmailHandler(invoker, time.Second, discardLogger())

	assert.NoError(t, handler.Handle(claimedEvent(t, "")))
	assert.Empty(t, invoker.Calls)
	assert.Equal(t, lucky.EventTypeDiscountClaimed, handler.EventType())
}
