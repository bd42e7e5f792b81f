package inventory

// ===========================
// Thresholds 庫存門檻值對象
// ===========================

// Thresholds 庫存警戒門檻
//
// 建構約束：0 <= Critical < Low
// 只在管理端儲存時驗證，Classify 不再檢查。
type Thresholds struct {
	low      int
	critical int
}

// 預設門檻
const (
	DefaultLowStockThreshold      = 10
	DefaultCriticalStockThreshold = 5
)

// NewThresholds 建構函數（checked 版本）
func NewThresholds(low, critical int) (Thresholds, error) {
	if critical < 0 || low < 0 {
		return Thresholds{}, ErrInvalidThresholds.WithContext(
			"low", low,
			"critical", critical,
			"reason", "thresholds cannot be negative",
		)
	}
	if critical >= low {
		return Thresholds{}, ErrInvalidThresholds.WithContext(
			"low", low,
			"critical", critical,
			"reason", "critical must be below low",
		)
	}
	return Thresholds{low: low, critical: critical}, nil
}

// DefaultThresholds 預設門檻（low 10, critical 5）
func DefaultThresholds() Thresholds {
	return Thresholds{low: DefaultLowStockThreshold, critical: DefaultCriticalStockThreshold}
}

// Low 低庫存門檻
func (t Thresholds) Low() int { return t.low }

// Critical 緊急庫存門檻
func (t Thresholds) Critical() int { return t.critical }
