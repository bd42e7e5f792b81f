package spinwheel

import "strings"

// 顯示在所有頁面
const AllPages = "all"

// Settings 轉盤設定（spin_wheel_settings）
type Settings struct {
	SpinsPerDay  int
	ShowOnPages  []string
	IsEnabled    bool
	ValidityDays int // 優惠券有效天數
}

// DefaultSettings 預設設定
func DefaultSettings() Settings {
	return Settings{
		SpinsPerDay:  1,
		ShowOnPages:  []string{"home"},
		IsEnabled:    true,
		ValidityDays: 7,
	}
}

// Validate 管理端儲存前驗證
func (s Settings) Validate() error {
	if s.SpinsPerDay < 1 {
		return ErrInvalidSettings.WithContext("spins_per_day", s.SpinsPerDay)
	}
	if s.ValidityDays < 1 {
		return ErrInvalidSettings.WithContext("validity_days", s.ValidityDays)
	}
	return nil
}

// ShowsOn 轉盤是否顯示在指定頁面
func (s Settings) ShowsOn(page string) bool {
	if !s.IsEnabled {
		return false
	}
	page = strings.ToLower(strings.TrimSpace(page))
	for _, p := range s.ShowOnPages {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == AllPages || p == page {
			return true
		}
	}
	return false
}
