package loyalty_test

import (
	"testing"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// PointsForPurchase 測試
// ===========================

// Test 1: 積分 = floor(金額 × 比例)
func TestPointsForPurchase(t *testing.T) {
	service := loyalty.NewPointsCalculationService()
	settings := loyalty.DefaultSettings()

	tests := []struct {
		name   string
		amount string
		want   int
	}{
		{"整數金額", "25000", 250},
		{"小數捨去", "12345.67", 123},
		{"不足 1 點", "99.99", 0},
		{"負數金額", "-500", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := service.PointsForPurchase(decimal.RequireFromString(tt.amount), settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, points.Value())
		})
	}
}

// ===========================
// QuoteRedemption 測試
// ===========================

// Test 2: 未觸及上限時使用全部請求積分
func TestQuoteRedemption_WithinCap(t *testing.T) {
	// Arrange
	service := loyalty.NewPointsCalculationService()

	// Act
	quote, err := service.QuoteRedemption(
		mustPoints(t, 1000), mustPoints(t, 500),
		decimal.NewFromInt(10000), loyalty.DefaultSettings(),
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 500, quote.Points.Value())
	assert.True(t, decimal.NewFromInt(125).Equal(quote.Discount), quote.Discount.String())
}

// Test 3: 折抵上限為訂單金額的 MaxDiscountPercent
func TestQuoteRedemption_CappedByMaxDiscount(t *testing.T) {
	// Arrange
	service := loyalty.NewPointsCalculationService()

	// Act
	// 20% × 1000 = 200 盧比 = 800 點
	quote, err := service.QuoteRedemption(
		mustPoints(t, 1000), mustPoints(t, 1000),
		decimal.NewFromInt(1000), loyalty.DefaultSettings(),
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 800, quote.Points.Value())
	assert.True(t, decimal.NewFromInt(200).Equal(quote.Discount), quote.Discount.String())
}

// Test 4: 請求超過可用積分時以可用積分為準
func TestQuoteRedemption_CappedByAvailable(t *testing.T) {
	// Arrange
	service := loyalty.NewPointsCalculationService()

	// Act
	quote, err := service.QuoteRedemption(
		mustPoints(t, 150), mustPoints(t, 400),
		decimal.NewFromInt(100000), loyalty.DefaultSettings(),
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, quote.Points.Value())
	assert.True(t, decimal.RequireFromString("37.5").Equal(quote.Discount), quote.Discount.String())
}

// Test 5: 低於最低折抵門檻
func TestQuoteRedemption_BelowMinimum(t *testing.T) {
	service := loyalty.NewPointsCalculationService()
	settings := loyalty.DefaultSettings()

	tests := []struct {
		name       string
		available  int
		requested  int
		orderTotal int64
	}{
		{"可用積分不足", 50, 50, 10000},
		{"上限低於門檻", 1000, 1000, 100},
		{"請求低於門檻", 1000, 20, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.QuoteRedemption(
				mustPoints(t, tt.available), mustPoints(t, tt.requested),
				decimal.NewFromInt(tt.orderTotal), settings,
			)
			assert.ErrorIs(t, err, loyalty.ErrBelowMinimumRedemption)
		})
	}
}

// ===========================
// Settings 測試
// ===========================

// Test 6: 設定驗證
func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, loyalty.DefaultSettings().Validate())

	bad := loyalty.DefaultSettings()
	bad.MaxDiscountPercent = 120
	assert.ErrorIs(t, bad.Validate(), loyalty.ErrInvalidSettings)

	bad = loyalty.DefaultSettings()
	bad.PointsValuePerRupee = decimal.Zero
	assert.ErrorIs(t, bad.Validate(), loyalty.ErrInvalidSettings)

	bad = loyalty.DefaultSettings()
	bad.MinPointsToRedeem = -1
	assert.ErrorIs(t, bad.Validate(), loyalty.ErrInvalidSettings)
}
