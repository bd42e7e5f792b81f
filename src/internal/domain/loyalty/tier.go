package loyalty

import "math"

// ===========================
// Tier 會員等級
// ===========================

// Tier 會員等級
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// 等級門檻（累積積分）
const (
	SilverThreshold   = 500
	GoldThreshold     = 2000
	PlatinumThreshold = 5000
)

// TierProgress 等級與升級進度
type TierProgress struct {
	Tier            Tier
	NextTier        Tier // platinum 時為空字串
	PointsToNext    int  // platinum 時為 0
	ProgressPercent float64
}

// ComputeTier 依累積積分計算等級與升級進度
//
// 門檻：
//   bronze   [0, 500)
//   silver   [500, 2000)
//   gold     [2000, 5000)
//   platinum [5000, ∞)
//
// progressPercent = min(100, totalPoints / 下一級門檻 * 100)；platinum 固定 100。
// 負數輸入屬於違約，視為 0。
func ComputeTier(totalPoints int) TierProgress {
	if totalPoints < 0 {
		totalPoints = 0
	}

	var tier, next Tier
	var nextThreshold int
	switch {
	case totalPoints >= PlatinumThreshold:
		return TierProgress{Tier: TierPlatinum, ProgressPercent: 100}
	case totalPoints >= GoldThreshold:
		tier, next, nextThreshold = TierGold, TierPlatinum, PlatinumThreshold
	case totalPoints >= SilverThreshold:
		tier, next, nextThreshold = TierSilver, TierGold, GoldThreshold
	default:
		tier, next, nextThreshold = TierBronze, TierSilver, SilverThreshold
	}

	progress := math.Min(100, float64(totalPoints)/float64(nextThreshold)*100)

	return TierProgress{
		Tier:            tier,
		NextTier:        next,
		PointsToNext:    nextThreshold - totalPoints,
		ProgressPercent: progress,
	}
}
