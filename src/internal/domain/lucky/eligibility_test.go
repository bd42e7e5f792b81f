package lucky_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

func newSeed() lucky.Seed {
	return lucky.Seed{UserID: lucky.NewUserID(), SessionStartedAt: evalNow.Add(-time.Hour)}
}

// otherNumber 返回一個與 n 不同的號碼
func otherNumber(n lucky.LuckyNumber) int {
	return n.Int()%lucky.MaxLuckyNumber + 1
}

func runningDiscount(percent int, rule lucky.WinningRule) lucky.Discount {
	return lucky.Discount{
		ID:              lucky.NewDiscountID(),
		Name:            "Diwali Lucky Draw",
		Code:            "LUCKY" + string(rune('A'+percent%26)),
		DiscountPercent: percent,
		Rule:            rule,
		StartsAt:        evalNow.Add(-24 * time.Hour),
		ExpiresAt:       evalNow.Add(24 * time.Hour),
		IsActive:        true,
	}
}

// Test 1: 多個活動符合時選最高折扣
func TestCheckEligibility_HighestPercentWins(t *testing.T) {
	// Arrange
	seed := newSeed()
	n := lucky.DeriveLuckyNumber(seed)
	discounts := []lucky.Discount{
		runningDiscount(5, lucky.Range{Min: 1, Max: 100}),
		runningDiscount(15, lucky.NumberSet{Numbers: []int{n.Int()}}),
		runningDiscount(10, lucky.DivisibleBy{Divisor: n.Int()}),
		runningDiscount(50, lucky.NumberSet{Numbers: []int{otherNumber(n)}}),
	}

	// Act
	result := lucky.CheckEligibility(seed, discounts, evalNow)

	// Assert
	assert.True(t, result.IsEligible)
	assert.Equal(t, n, result.LuckyNumber)
	require.NotNil(t, result.Discount)
	assert.Equal(t, 15, result.Discount.DiscountPercent)
	assert.Contains(t, result.Message, "15% off")
}

// Test 2: 過期、未開始、停用的活動不列入
func TestCheckEligibility_SkipsNonRunning(t *testing.T) {
	// Arrange
	seed := newSeed()
	everyone := lucky.Range{Min: 1, Max: 100}

	expired := runningDiscount(30, everyone)
	expired.ExpiresAt = evalNow
	upcoming := runningDiscount(40, everyone)
	upcoming.StartsAt = evalNow.Add(time.Minute)
	disabled := runningDiscount(50, everyone)
	disabled.IsActive = false
	live := runningDiscount(10, everyone)

	// Act
	result := lucky.CheckEligibility(seed, []lucky.Discount{expired, upcoming, disabled, live}, evalNow)

	// Assert
	require.True(t, result.IsEligible)
	assert.Equal(t, live.ID, result.Discount.ID)
}

// Test 3: 號碼不符合任何規則
func TestCheckEligibility_NoMatch(t *testing.T) {
	// Arrange
	seed := newSeed()
	n := lucky.DeriveLuckyNumber(seed)
	discounts := []lucky.Discount{runningDiscount(20, lucky.NumberSet{Numbers: []int{otherNumber(n)}})}

	// Act
	result := lucky.CheckEligibility(seed, discounts, evalNow)

	// Assert
	assert.False(t, result.IsEligible)
	assert.Nil(t, result.Discount)
	assert.Equal(t, n, result.LuckyNumber)
	assert.Contains(t, result.Message, "No lucky discount this time")
}

// Test 4: 沒有進行中的活動
func TestCheckEligibility_NoRunningDiscounts(t *testing.T) {
	// Act
	result := lucky.CheckEligibility(newSeed(), nil, evalNow)

	// Assert
	assert.False(t, result.IsEligible)
	assert.Contains(t, result.Message, "no lucky discounts running")
}

// Test 5: 同一 session 重複查詢結果相同
func TestCheckEligibility_Idempotent(t *testing.T) {
	// Arrange
	seed := newSeed()
	discounts := []lucky.Discount{runningDiscount(10, lucky.DivisibleBy{Divisor: 2})}

	// Act
	first := lucky.CheckEligibility(seed, discounts, evalNow)
	second := lucky.CheckEligibility(seed, discounts, evalNow.Add(10*time.Minute))

	// Assert
	assert.Equal(t, first, second)
}
