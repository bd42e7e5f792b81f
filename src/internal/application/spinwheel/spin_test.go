package spinwheel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

func guestSettings(spinsPerDay int) spinwheel.Settings {
	s := spinwheel.DefaultSettings()
	s.SpinsPerDay = spinsPerDay
	return s
}

// Test 1: 訪客第一次抽獎成功
func TestSpinUseCase_GuestFirstSpin(t *testing.T) {
	// Arrange
	tenOff := prize("10% OFF", 1, 1)
	tenOff.DiscountPercent = intPtr(10)
	f := newSpinFixture(guestSettings(1), tenOff)

	// Act
	result, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "10% OFF", result.Prize.Label)
	assert.Regexp(t, `^SPIN-[0-9A-F]{10}$`, result.Coupon.CouponCode)
	assert.Equal(t, testNow.AddDate(0, 0, 7), result.Coupon.ExpiresAt)
	assert.Equal(t, 0, result.SpinsRemaining)
	assert.Equal(t, 1, f.history.SaveCallCount)

	require.Len(t, f.publisher.Published, 1)
	won, ok := f.publisher.Published[0].(*spinwheel.PrizeWonEvent)
	require.True(t, ok)
	assert.Equal(t, result.Coupon.CouponCode, won.CouponCode)
	assert.Equal(t, 10, *won.DiscountPercent)
}

// Test 2: 第 spinsPerDay+1 次抽獎失敗
func TestSpinUseCase_QuotaExceeded(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(2), prize("Free Gift", 1, 1))
	cmd := SpinCommand{SessionID: "sess-abc"}

	// Act
	_, err1 := f.useCase.Execute(context.Background(), cmd)
	second, err2 := f.useCase.Execute(context.Background(), cmd)
	_, err3 := f.useCase.Execute(context.Background(), cmd)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 0, second.SpinsRemaining)
	assert.ErrorIs(t, err3, spinwheel.ErrQuotaExceeded)
	assert.Equal(t, 2, f.history.SaveCallCount)
}

// Test 3: 不同訪客各自計算次數
func TestSpinUseCase_QuotaIsPerIdentity(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(1), prize("Free Gift", 1, 1))

	// Act
	_, err1 := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-a"})
	_, err2 := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-b"})

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
}

// Test 4: 昨天（店家時區）的抽獎不計入今日次數
func TestSpinUseCase_DayBoundaryUsesStoreTimezone(t *testing.T) {
	// Arrange
	gift := prize("Free Gift", 1, 1)
	f := newSpinFixture(guestSettings(1), gift)
	identity, err := spinwheel.NewGuestIdentity("sess-abc")
	require.NoError(t, err)

	// 2024-11-01 00:00 IST = 2024-10-31 18:30 UTC
	yesterday := time.Date(2024, 10, 31, 18, 0, 0, 0, time.UTC)
	f.history.entries = append(f.history.entries,
		spinwheel.NewHistoryEntry(identity, gift, "SPIN-AAAAAAAAAA", yesterday, 7))

	// Act
	_, err = f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	require.NoError(t, err)

	// Arrange: 今日 00:30 IST 已抽過
	f2 := newSpinFixture(guestSettings(1), gift)
	earlyToday := time.Date(2024, 10, 31, 19, 0, 0, 0, time.UTC)
	f2.history.entries = append(f2.history.entries,
		spinwheel.NewHistoryEntry(identity, gift, "SPIN-BBBBBBBBBB", earlyToday, 7))

	// Act
	_, err = f2.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	assert.ErrorIs(t, err, spinwheel.ErrQuotaExceeded)
}

// Test 5: 轉盤停用
func TestSpinUseCase_Disabled(t *testing.T) {
	// Arrange
	settings := guestSettings(1)
	settings.IsEnabled = false
	f := newSpinFixture(settings, prize("Free Gift", 1, 1))

	// Act
	_, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	assert.ErrorIs(t, err, spinwheel.ErrSpinDisabled)
	assert.Equal(t, 0, f.history.SaveCallCount)
}

// Test 6: 優惠券代碼衝突時重試
func TestSpinUseCase_RetriesOnCouponConflict(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(1), prize("Free Gift", 1, 1))
	f.history.ConflictTimes = 2

	// Act
	result, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, f.history.SaveCallCount)
	assert.Equal(t, 3, f.txManager.InTransactionCallCount)
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, result.Coupon.CouponCode, f.history.entries[0].CouponCode())
	assert.Len(t, f.publisher.Published, 1)
}

// Test 7: 衝突次數超過上限
func TestSpinUseCase_GivesUpAfterMaxAttempts(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(1), prize("Free Gift", 1, 1))
	f.history.ConflictTimes = maxSaveAttempts

	// Act
	_, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	assert.ErrorIs(t, err, spinwheel.ErrCouponConflict)
	assert.Equal(t, maxSaveAttempts, f.history.SaveCallCount)
	assert.Empty(t, f.publisher.Published)
}

// Test 8: 每次抽獎佔用當日下一個名額
func TestSpinUseCase_AssignsNextQuotaSlot(t *testing.T) {
	// Arrange
	gift := prize("Free Gift", 1, 1)
	f := newSpinFixture(guestSettings(3), gift)
	identity, err := spinwheel.NewGuestIdentity("sess-abc")
	require.NoError(t, err)
	f.history.entries = append(f.history.entries,
		spinwheel.NewHistoryEntry(identity, gift, "SPIN-AAAAAAAAAA", testNow.Add(-time.Hour), 7))

	// Act
	_, err = f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	require.NoError(t, err)
	require.Len(t, f.history.entries, 2)
	slot, ok := f.history.entries[1].QuotaSlot()
	require.True(t, ok)
	assert.Equal(t, spinwheel.QuotaSlot{Day: "2024-11-01", Number: 2}, slot)
}

// Test 9: 並發抽獎佔用同一名額時重新計算次數
func TestSpinUseCase_ConcurrentSpinTakesSlot(t *testing.T) {
	concurrentSpin := func(t *testing.T, gift spinwheel.Prize) *spinwheel.HistoryEntry {
		identity, err := spinwheel.NewGuestIdentity("sess-abc")
		require.NoError(t, err)
		other := spinwheel.NewHistoryEntry(identity, gift, "SPIN-CCCCCCCCCC", testNow, 7)
		other.AssignQuotaSlot(spinwheel.QuotaSlot{Day: "2024-11-01", Number: 1})
		return other
	}

	t.Run("還有次數時改用下一個名額", func(t *testing.T) {
		// Arrange
		gift := prize("Free Gift", 1, 1)
		f := newSpinFixture(guestSettings(2), gift)
		f.history.Concurrent = []*spinwheel.HistoryEntry{concurrentSpin(t, gift)}

		// Act
		result, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, f.history.SaveCallCount)
		assert.Equal(t, 0, result.SpinsRemaining)
		require.Len(t, f.history.entries, 2)
		slot, _ := f.history.entries[1].QuotaSlot()
		assert.Equal(t, 2, slot.Number)
	})

	t.Run("次數已被用完時拒絕", func(t *testing.T) {
		// Arrange
		gift := prize("Free Gift", 1, 1)
		f := newSpinFixture(guestSettings(1), gift)
		f.history.Concurrent = []*spinwheel.HistoryEntry{concurrentSpin(t, gift)}

		// Act
		_, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

		// Assert
		assert.ErrorIs(t, err, spinwheel.ErrQuotaExceeded)
		assert.Equal(t, 1, f.history.SaveCallCount)
		assert.Len(t, f.history.entries, 1)
		assert.Empty(t, f.publisher.Published)
	})
}

// Test 10: 未提供身份
func TestSpinUseCase_MissingIdentity(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(1), prize("Free Gift", 1, 1))

	// Act
	_, err := f.useCase.Execute(context.Background(), SpinCommand{})

	// Assert
	assert.ErrorIs(t, err, spinwheel.ErrInvalidIdentity)
}

// Test 11: 依權重抽出（fixedRandom 落在第二個獎項區間）
func TestSpinUseCase_UsesWeights(t *testing.T) {
	// Arrange
	f := newSpinFixture(guestSettings(1), prize("Try Again", 3, 1), prize("20% OFF", 1, 2))
	f.useCase.rng = fixedRandom(3)

	// Act
	result, err := f.useCase.Execute(context.Background(), SpinCommand{SessionID: "sess-abc"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "20% OFF", result.Prize.Label)
}
