package spinwheel

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// 抽獎次數
// ===========================

const quotaDayLayout = "2006-01-02"

// QuotaSlot 抽獎者某天的第 Number 次抽獎
type QuotaSlot struct {
	Day    string
	Number int
}

// QuotaState 抽獎者今日的次數狀態
type QuotaState struct {
	SpinsToday  int // 今日（店家時區的日曆日）已抽次數
	SpinsPerDay int
}

// Allows 是否還能再抽
func (q QuotaState) Allows() bool {
	return q.SpinsToday < q.SpinsPerDay
}

// NextSlot 下一次抽獎佔用的名額
//
// dayStart 為店家時區的當日零點。同一抽獎者同一天的名額不可重複，
// 倉儲以唯一索引保證並發抽獎不會超過每日次數。
func (q QuotaState) NextSlot(dayStart time.Time) QuotaSlot {
	return QuotaSlot{Day: dayStart.Format(quotaDayLayout), Number: q.SpinsToday + 1}
}

// Remaining 今日剩餘次數
func (q QuotaState) Remaining() int {
	if !q.Allows() {
		return 0
	}
	return q.SpinsPerDay - q.SpinsToday
}

// ===========================
// Resolve 抽獎
// ===========================

// Resolve 從啟用獎項中依權重抽出一個
//
// 流程：
// 1. 次數已滿 → ErrQuotaExceeded
// 2. 過濾啟用獎項並依 SortOrder 排序
// 3. shared.WeightedChoice 抽取
//
// rng 由調用者注入；測試時使用固定 seed 即可重現結果。
func Resolve(prizes []Prize, quota QuotaState, rng shared.RandomSource) (Prize, error) {
	if !quota.Allows() {
		return Prize{}, ErrQuotaExceeded.WithContext(
			"spins_today", quota.SpinsToday,
			"spins_per_day", quota.SpinsPerDay,
		)
	}

	return shared.WeightedChoice(ActivePrizes(prizes), func(p Prize) int {
		return p.Weight
	}, rng)
}
