package spinwheel

import (
	"sort"
	"strings"
)

// ===========================
// Prize 轉盤獎項
// ===========================

// Prize 轉盤獎項（管理端設定）
//
// 被抽中的機率 = Weight / Σ(啟用獎項的 Weight)
type Prize struct {
	ID              PrizeID
	Label           string
	Value           string // 顯示在轉盤上的獎項內容，例如「10% OFF」
	DiscountPercent *int   // nil 表示非折扣類獎項（例如免運、小禮物）
	Color           string
	Weight          int
	IsActive        bool
	SortOrder       int
}

// ValidatePrizes 管理端儲存前驗證整組獎項
//
// 規則：
// - 每個獎項需有 Label，Weight 必須為正整數
// - DiscountPercent 若有設定需在 1..100
// - 至少一個啟用的獎項
//
// 權重錯誤一律在此處拒絕，抽獎時不再檢查設定。
func ValidatePrizes(prizes []Prize) error {
	active := 0
	for i, p := range prizes {
		if strings.TrimSpace(p.Label) == "" {
			return ErrInvalidPrize.WithContext("index", i, "reason", "label is required")
		}
		if p.Weight <= 0 {
			return ErrInvalidWeights.WithContext(
				"index", i,
				"label", p.Label,
				"weight", p.Weight,
			)
		}
		if p.DiscountPercent != nil && (*p.DiscountPercent < 1 || *p.DiscountPercent > 100) {
			return ErrInvalidPrize.WithContext("index", i, "discount_percent", *p.DiscountPercent)
		}
		if p.IsActive {
			active++
		}
	}
	if active == 0 {
		return ErrInvalidWeights.WithContext("reason", "at least one prize must be active")
	}
	return nil
}

// ActivePrizes 過濾出啟用的獎項，依 SortOrder 排序（穩定排序）
func ActivePrizes(prizes []Prize) []Prize {
	active := make([]Prize, 0, len(prizes))
	for _, p := range prizes {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})
	return active
}

// PrizeOdds 獎項與中獎機率（百分比）
type PrizeOdds struct {
	Prize         Prize
	ChancePercent float64
}

// Odds 計算每個啟用獎項的中獎機率
func Odds(prizes []Prize) []PrizeOdds {
	active := ActivePrizes(prizes)

	total := 0
	for _, p := range active {
		total += p.Weight
	}

	odds := make([]PrizeOdds, 0, len(active))
	for _, p := range active {
		chance := 0.0
		if total > 0 {
			chance = float64(p.Weight) / float64(total) * 100
		}
		odds = append(odds, PrizeOdds{Prize: p, ChancePercent: chance})
	}
	return odds
}
