package loyalty_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// 對帳測試
// ===========================

// Test 1: 任意操作序列後，流水總和等於可用積分
func TestReconcile_RandomOperationSequence(t *testing.T) {
	// Arrange
	rng := rand.New(rand.NewSource(7))
	account := newAccount(t)
	var entries []*loyalty.LoyaltyTransaction

	// Act
	for i := 0; i < 500; i++ {
		var (
			entry *loyalty.LoyaltyTransaction
			err   error
		)
		switch rng.Intn(4) {
		case 0, 1:
			entry, err = account.Earn(mustPoints(t, rng.Intn(300)), loyalty.TransactionTypePurchase, "purchase")
		case 2:
			entry, err = account.Redeem(mustPoints(t, rng.Intn(400)+1), "checkout")
		case 3:
			if rng.Intn(10) == 0 {
				entry, err = account.Forfeit("reset")
			}
		}
		if err != nil {
			continue
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	// Assert
	assert.NoError(t, loyalty.Reconcile(account, entries))
	assert.Equal(t, account.AvailablePoints().Value(), loyalty.LedgerSum(entries))
}

// Test 2: 流水缺漏時對帳失敗
func TestReconcile_Mismatch(t *testing.T) {
	// Arrange
	account := newAccount(t)
	first, err := account.Earn(mustPoints(t, 200), loyalty.TransactionTypePurchase, "Order #1")
	require.NoError(t, err)
	_, err = account.Earn(mustPoints(t, 50), loyalty.TransactionTypeAdjustment, "goodwill")
	require.NoError(t, err)

	// Act
	err = loyalty.Reconcile(account, []*loyalty.LoyaltyTransaction{first})

	// Assert
	assert.ErrorIs(t, err, loyalty.ErrLedgerMismatch)
}

// Test 3: 重建流水保留所有欄位
func TestReconstructLoyaltyTransaction(t *testing.T) {
	// Arrange
	id := loyalty.NewTransactionID()
	userID := loyalty.NewUserID()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Act
	entry := loyalty.ReconstructLoyaltyTransaction(id, userID, -120, "Order #9", loyalty.TransactionTypeRedemption, at)

	// Assert
	assert.Equal(t, id, entry.ID())
	assert.Equal(t, userID, entry.UserID())
	assert.Equal(t, -120, entry.Points())
	assert.Equal(t, loyalty.TransactionTypeRedemption, entry.Type())
	assert.Equal(t, at, entry.CreatedAt())
}
