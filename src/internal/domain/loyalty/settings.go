package loyalty

import (
	"github.com/shopspring/decimal"
)

// ===========================
// Settings 積分規則設定（loyalty_settings）
// ===========================

// Settings 積分規則設定
//
// - PointsPerRupee：每消費 1 盧比獲得的積分（可為小數，例如 0.1 = 每 10 盧比 1 點）
// - PointsValuePerRupee：1 點積分折抵的盧比金額
// - MinPointsToRedeem：單次折抵的最低積分
// - MaxDiscountPercent：積分折抵最多佔訂單金額的百分比
// - WelcomeBonusPoints：建立帳戶時贈送的積分
// - IsEnabled：積分計畫是否啟用
type Settings struct {
	PointsPerRupee      decimal.Decimal
	PointsValuePerRupee decimal.Decimal
	MinPointsToRedeem   int
	MaxDiscountPercent  int
	WelcomeBonusPoints  int
	IsEnabled           bool
}

// DefaultSettings 預設設定（資料表尚無設定列時使用）
func DefaultSettings() Settings {
	return Settings{
		PointsPerRupee:      decimal.NewFromFloat(0.01),
		PointsValuePerRupee: decimal.NewFromFloat(0.25),
		MinPointsToRedeem:   100,
		MaxDiscountPercent:  20,
		WelcomeBonusPoints:  50,
		IsEnabled:           true,
	}
}

// Validate 管理端儲存前驗證
func (s Settings) Validate() error {
	if s.PointsPerRupee.IsNegative() {
		return ErrInvalidSettings.WithContext("points_per_rupee", s.PointsPerRupee.String())
	}
	if !s.PointsValuePerRupee.IsPositive() {
		return ErrInvalidSettings.WithContext("points_value_per_rupee", s.PointsValuePerRupee.String())
	}
	if s.MinPointsToRedeem < 0 || s.WelcomeBonusPoints < 0 {
		return ErrInvalidSettings.WithContext(
			"min_points_to_redeem", s.MinPointsToRedeem,
			"welcome_bonus_points", s.WelcomeBonusPoints,
		)
	}
	if s.MaxDiscountPercent < 0 || s.MaxDiscountPercent > 100 {
		return ErrInvalidSettings.WithContext("max_discount_percent", s.MaxDiscountPercent)
	}
	return nil
}
