package spinwheel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

func newListPrizes(f *spinFixture) *ListPrizesUseCase {
	return NewListPrizesUseCase(f.prizes, f.settings, f.history, f.txManager, shared.FixedClock{At: testNow}, kolkata)
}

func TestListPrizesUseCase(t *testing.T) {
	t.Run("首頁顯示啟用獎項與機率", func(t *testing.T) {
		// Arrange
		retired := prize("Retired", 10, 0)
		retired.IsActive = false
		f := newSpinFixture(guestSettings(3), prize("A", 1, 2), prize("B", 1, 1), retired)

		// Act
		result, err := newListPrizes(f).Execute(context.Background(), ListPrizesQuery{Page: "home", SessionID: "sess-abc"})

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Visible)
		require.Len(t, result.Prizes, 2)
		assert.Equal(t, "B", result.Prizes[0].Label)
		assert.InDelta(t, 50.0, result.Prizes[0].ChancePercent, 0.001)
		assert.Equal(t, 3, result.SpinsRemaining)
	})

	t.Run("不在設定頁面時隱藏", func(t *testing.T) {
		// Arrange
		f := newSpinFixture(guestSettings(1), prize("A", 1, 1))

		// Act
		result, err := newListPrizes(f).Execute(context.Background(), ListPrizesQuery{Page: "checkout"})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Visible)
		assert.Empty(t, result.Prizes)
	})

	t.Run("剩餘次數扣除今日已抽", func(t *testing.T) {
		// Arrange
		gift := prize("A", 1, 1)
		f := newSpinFixture(guestSettings(2), gift)
		identity, err := spinwheel.NewGuestIdentity("sess-abc")
		require.NoError(t, err)
		f.history.entries = append(f.history.entries,
			spinwheel.NewHistoryEntry(identity, gift, "SPIN-AAAAAAAAAA", testNow, 7))

		// Act
		result, err := newListPrizes(f).Execute(context.Background(), ListPrizesQuery{SessionID: "sess-abc"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.SpinsRemaining)
	})
}
