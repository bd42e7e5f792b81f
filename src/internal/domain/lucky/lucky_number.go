package lucky

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// 幸運號碼範圍
const (
	MinLuckyNumber = 1
	MaxLuckyNumber = 100
)

// LuckyNumber 幸運號碼（1..100）
type LuckyNumber int

// NewLuckyNumber 建構函數（checked 版本）
func NewLuckyNumber(value int) (LuckyNumber, error) {
	if value < MinLuckyNumber || value > MaxLuckyNumber {
		return 0, ErrInvalidLuckyNumber.WithContext(
			"value", value,
			"min", MinLuckyNumber,
			"max", MaxLuckyNumber,
		)
	}
	return LuckyNumber(value), nil
}

// Int 轉為 int
func (n LuckyNumber) Int() int {
	return int(n)
}

// Seed 幸運號碼種子
//
// 同一登入 session（同一 UserID + 登入時間）永遠得到同一個號碼；
// 重新登入後 SessionStartedAt 改變，號碼重新抽取。
type Seed struct {
	UserID           UserID
	SessionStartedAt time.Time
}

// DeriveLuckyNumber 由種子推導幸運號碼
//
// SHA-256("<userID>|<sessionStartedAt 的 UTC 秒數>") 取前 8 bytes，mod 100 後 +1。
// 純函數，不依賴任何外部狀態。
func DeriveLuckyNumber(seed Seed) LuckyNumber {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed.SessionStartedAt.UTC().Unix()))

	h := sha256.New()
	h.Write([]byte(seed.UserID.String()))
	h.Write([]byte{'|'})
	h.Write(buf[:])
	sum := h.Sum(nil)

	span := uint64(MaxLuckyNumber - MinLuckyNumber + 1)
	return LuckyNumber(binary.BigEndian.Uint64(sum[:8])%span + MinLuckyNumber)
}
