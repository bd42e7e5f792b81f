package spinwheel

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeQuotaExceeded   shared.ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeSpinDisabled    shared.ErrorCode = "SPIN_DISABLED"
	ErrCodeCouponExpired   shared.ErrorCode = "SPIN_COUPON_EXPIRED"
	ErrCodeAlreadyRedeemed shared.ErrorCode = "SPIN_COUPON_REDEEMED"
	ErrCodeCouponNotFound  shared.ErrorCode = "SPIN_COUPON_NOT_FOUND"
	ErrCodeCouponConflict  shared.ErrorCode = "SPIN_COUPON_CONFLICT"
	ErrCodeSlotTaken       shared.ErrorCode = "SPIN_SLOT_TAKEN"
	ErrCodeInvalidPrize    shared.ErrorCode = "SPIN_PRIZE_INVALID"
	ErrCodeInvalidSettings shared.ErrorCode = "SPIN_SETTINGS_INVALID"
	ErrCodeInvalidIdentity shared.ErrorCode = "SPIN_IDENTITY_INVALID"
	ErrCodeInvalidPrizeID  shared.ErrorCode = "SPIN_PRIZE_ID_INVALID"
	ErrCodeInvalidEntryID  shared.ErrorCode = "SPIN_ENTRY_ID_INVALID"
)

// ===========================
// 預定義錯誤
// ===========================

// ErrInvalidWeights 獎項權重錯誤（共用 shared 的定義）
var ErrInvalidWeights = shared.ErrInvalidWeights

// 抽獎流程錯誤（客人可見）
var (
	ErrQuotaExceeded = &shared.DomainError{
		Code:    ErrCodeQuotaExceeded,
		Message: "You've used all of today's spins. Come back tomorrow for another chance to win!",
	}

	ErrSpinDisabled = &shared.DomainError{
		Code:    ErrCodeSpinDisabled,
		Message: "The spin wheel is taking a break. Check back soon.",
	}

	ErrCouponExpired = &shared.DomainError{
		Code:    ErrCodeCouponExpired,
		Message: "This spin coupon has expired. Spin again to win a new one.",
	}

	ErrAlreadyRedeemed = &shared.DomainError{
		Code:    ErrCodeAlreadyRedeemed,
		Message: "This spin coupon has already been used.",
	}

	ErrCouponNotFound = &shared.DomainError{
		Code:    ErrCodeCouponNotFound,
		Message: "We couldn't find that coupon code. Check the code and try again.",
	}

	// ErrCouponConflict 優惠券代碼唯一索引衝突（重新產生即可）
	ErrCouponConflict = &shared.DomainError{
		Code:    ErrCodeCouponConflict,
		Message: "We couldn't issue your coupon. Please spin again.",
	}

	// ErrSlotTaken 同一抽獎者同一天的第 N 次名額已被另一個請求佔用（重新計算次數即可）
	ErrSlotTaken = &shared.DomainError{
		Code:    ErrCodeSlotTaken,
		Message: "Another spin finished at the same moment. Please spin again.",
	}
)

// 設定錯誤
var (
	ErrInvalidPrize = &shared.DomainError{
		Code:    ErrCodeInvalidPrize,
		Message: "A prize is invalid. Every prize needs a label and a discount between 1 and 100 percent if set.",
	}

	ErrInvalidSettings = &shared.DomainError{
		Code:    ErrCodeInvalidSettings,
		Message: "Spin wheel settings are invalid. Allow at least one spin per day and one day of coupon validity.",
	}

	ErrInvalidIdentity = &shared.DomainError{
		Code:    ErrCodeInvalidIdentity,
		Message: "We couldn't identify your session. Refresh the page and try again.",
	}

	ErrInvalidPrizeID = &shared.DomainError{
		Code:    ErrCodeInvalidPrizeID,
		Message: "Invalid prize ID.",
	}

	ErrInvalidEntryID = &shared.DomainError{
		Code:    ErrCodeInvalidEntryID,
		Message: "Invalid spin history ID.",
	}
)
