package lucky

import (
	"strings"
	"time"
)

// ===========================
// Discount 幸運折扣活動
// ===========================

// Discount 幸運折扣活動（由管理端設定，評估時唯讀）
type Discount struct {
	ID              DiscountID
	Name            string
	Code            string // 結帳時輸入的折扣碼
	DiscountPercent int    // 1..100
	Rule            WinningRule
	StartsAt        time.Time
	ExpiresAt       time.Time
	IsActive        bool
}

// Validate 管理端儲存前驗證
func (d Discount) Validate() error {
	if d.ID.IsEmpty() {
		return ErrInvalidDiscount.WithContext("reason", "id cannot be empty")
	}
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Code) == "" {
		return ErrInvalidDiscount.WithContext("reason", "name and code are required")
	}
	if d.DiscountPercent < 1 || d.DiscountPercent > 100 {
		return ErrInvalidDiscount.WithContext("discount_percent", d.DiscountPercent)
	}
	if d.Rule == nil {
		return ErrInvalidRule.WithContext("reason", "rule is required")
	}
	if err := d.Rule.Validate(); err != nil {
		return err
	}
	if !d.ExpiresAt.After(d.StartsAt) {
		return ErrInvalidDiscount.WithContext(
			"starts_at", d.StartsAt,
			"expires_at", d.ExpiresAt,
		)
	}
	return nil
}

// HasStarted 活動是否已開始
func (d Discount) HasStarted(now time.Time) bool {
	return !now.Before(d.StartsAt)
}

// IsExpired 活動是否已過期（ExpiresAt 當下即視為過期）
func (d Discount) IsExpired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}

// IsRunning 活動是否可參與：啟用、已開始、未過期
func (d Discount) IsRunning(now time.Time) bool {
	return d.IsActive && d.HasStarted(now) && !d.IsExpired(now)
}

// Matches 幸運號碼是否符合此活動的規則
func (d Discount) Matches(n LuckyNumber) bool {
	return d.Rule != nil && d.Rule.Matches(n)
}
