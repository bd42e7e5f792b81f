package spinwheel

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// CouponPrefix 轉盤優惠券前綴
const CouponPrefix = "SPIN-"

var couponPattern = regexp.MustCompile(`^SPIN-[0-9A-F]{10}$`)

// NewCouponCode 產生優惠券代碼，格式 SPIN-XXXXXXXXXX（10 位大寫十六進位）
//
// 唯一性由 spin_history.coupon_code 唯一索引保證，衝突時由調用者重新產生。
func NewCouponCode() string {
	id := uuid.New()
	return CouponPrefix + strings.ToUpper(hex.EncodeToString(id[:5]))
}

// NormalizeCouponCode 清理客人輸入的代碼
func NormalizeCouponCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !couponPattern.MatchString(code) {
		return "", ErrCouponNotFound.WithContext("code", code)
	}
	return code, nil
}
