package lucky

import (
	"fmt"
	"time"
)

// Eligibility 幸運折扣資格判斷結果
type Eligibility struct {
	IsEligible  bool
	LuckyNumber LuckyNumber
	Discount    *Discount // 不符合資格時為 nil
	Message     string
}

// CheckEligibility 判斷此 session 的幸運號碼能解鎖哪個折扣
//
// 業務規則：
// - 只考慮正在進行中的活動（IsRunning）
// - 多個活動同時符合時，選 DiscountPercent 最高者；相同時取列表中較前者
//
// 純函數：同一 seed、同一活動列表、同一時間點永遠返回相同結果。
func CheckEligibility(seed Seed, discounts []Discount, now time.Time) Eligibility {
	number := DeriveLuckyNumber(seed)

	var best *Discount
	running := 0
	for i := range discounts {
		d := discounts[i]
		if !d.IsRunning(now) {
			continue
		}
		running++
		if !d.Matches(number) {
			continue
		}
		if best == nil || d.DiscountPercent > best.DiscountPercent {
			best = &d
		}
	}

	switch {
	case best != nil:
		return Eligibility{
			IsEligible:  true,
			LuckyNumber: number,
			Discount:    best,
			Message: fmt.Sprintf(
				"Your lucky number is %d! You've unlocked %d%% off with code %s.",
				number, best.DiscountPercent, best.Code,
			),
		}
	case running == 0:
		return Eligibility{
			LuckyNumber: number,
			Message:     "There are no lucky discounts running right now. Check back during our next offer.",
		}
	default:
		return Eligibility{
			LuckyNumber: number,
			Message:     fmt.Sprintf("Your lucky number is %d. No lucky discount this time, try again on your next visit!", number),
		}
	}
}
