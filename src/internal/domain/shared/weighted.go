package shared

import "math/rand"

// ===========================
// 加權隨機選擇
// ===========================

// RandomSource 隨機數來源
//
// *math/rand.Rand 滿足此介面；測試時注入固定 seed 的來源以重現結果。
type RandomSource interface {
	// Intn 返回 [0, n) 的均勻分布整數
	Intn(n int) int
}

// WeightedChoice 依權重隨機選出一個元素
//
// 演算法：
// 1. 依 items 的順序建立累積權重區間
// 2. 抽取 [0, totalWeight) 的均勻隨機數 draw
// 3. 返回第一個累積權重 > draw 的元素
//
// 因此元素 i 被選中的機率 = weight(i) / Σweight。
//
// 錯誤：
// - items 為空 → ErrInvalidWeights
// - 任一權重 <= 0 → ErrInvalidWeights
func WeightedChoice[T any](items []T, weight func(T) int, rng RandomSource) (T, error) {
	var zero T

	if len(items) == 0 {
		return zero, ErrInvalidWeights.WithContext("reason", "no items to choose from")
	}

	cumulative := make([]int, len(items))
	total := 0
	for i, item := range items {
		w := weight(item)
		if w <= 0 {
			return zero, ErrInvalidWeights.WithContext(
				"index", i,
				"weight", w,
			)
		}
		total += w
		cumulative[i] = total
	}

	draw := rng.Intn(total)
	for i, upper := range cumulative {
		if draw < upper {
			return items[i], nil
		}
	}

	// draw < total 恆成立，不會走到這裡
	return items[len(items)-1], nil
}

// SystemRandom 使用 math/rand 全域來源（可並發使用，啟動時自動隨機 seed）
type SystemRandom struct{}

// Intn 返回 [0, n) 的均勻分布整數
func (SystemRandom) Intn(n int) int {
	return rand.Intn(n)
}
