package shared

import "time"

// Clock 時間來源
//
// 「今天」的判斷（抽獎次數、過期）都依賴注入的 Clock，測試時使用 FixedClock。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系統時間
type SystemClock struct{}

// Now 返回當前時間
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock 固定時間（測試用）
type FixedClock struct {
	At time.Time
}

// Now 返回固定時間
func (c FixedClock) Now() time.Time {
	return c.At
}

// StartOfDay 返回 t 在 loc 時區的當日 00:00
//
// loc 為 nil 時使用 t 本身的時區
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
