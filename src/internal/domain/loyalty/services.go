package loyalty

import (
	"github.com/shopspring/decimal"
)

// ===========================
// PointsCalculationService 領域服務
// ===========================

// PointsCalculationService 積分計算領域服務（無狀態）
type PointsCalculationService struct{}

// NewPointsCalculationService 建構函數
func NewPointsCalculationService() *PointsCalculationService {
	return &PointsCalculationService{}
}

// PointsForPurchase 依消費金額計算積分
//
// 業務規則：
// - 積分 = floor(金額 × PointsPerRupee)
// - 負數金額返回 0 積分
func (s *PointsCalculationService) PointsForPurchase(
	amount decimal.Decimal,
	settings Settings,
) (PointsAmount, error) {
	pointsValue := amount.Mul(settings.PointsPerRupee).Floor().IntPart()
	if pointsValue < 0 {
		pointsValue = 0
	}
	return NewPointsAmount(int(pointsValue))
}

// RedemptionQuote 折抵試算結果
type RedemptionQuote struct {
	Points   PointsAmount    // 實際使用的積分
	Discount decimal.Decimal // 折抵的盧比金額
}

// QuoteRedemption 計算結帳時可折抵的積分
//
// 業務規則（依序）：
// 1. 可用積分 < MinPointsToRedeem → ErrBelowMinimumRedemption
// 2. 實際使用 = min(requested, available, 上限)
//    上限 = floor(訂單金額 × MaxDiscountPercent% ÷ PointsValuePerRupee)
// 3. 實際使用 < MinPointsToRedeem → ErrBelowMinimumRedemption
// 4. 折抵金額 = 實際使用 × PointsValuePerRupee（四捨五入到 0.01）
func (s *PointsCalculationService) QuoteRedemption(
	available PointsAmount,
	requested PointsAmount,
	orderTotal decimal.Decimal,
	settings Settings,
) (RedemptionQuote, error) {
	minimum := newPointsAmountUnchecked(settings.MinPointsToRedeem)
	if available.LessThan(minimum) {
		return RedemptionQuote{}, ErrBelowMinimumRedemption.WithContext(
			"available", available.Value(),
			"minimum", settings.MinPointsToRedeem,
		)
	}

	maxDiscount := orderTotal.
		Mul(decimal.NewFromInt(int64(settings.MaxDiscountPercent))).
		Div(decimal.NewFromInt(100))
	capValue := maxDiscount.Div(settings.PointsValuePerRupee).Floor().IntPart()
	if capValue < 0 {
		capValue = 0
	}

	used := requested.Min(available).Min(newPointsAmountUnchecked(int(capValue)))
	if used.LessThan(minimum) || used.IsZero() {
		return RedemptionQuote{}, ErrBelowMinimumRedemption.WithContext(
			"requested", requested.Value(),
			"allowed", used.Value(),
			"minimum", settings.MinPointsToRedeem,
		)
	}

	discount := decimal.NewFromInt(int64(used.Value())).
		Mul(settings.PointsValuePerRupee).
		Round(2)

	return RedemptionQuote{Points: used, Discount: discount}, nil
}
