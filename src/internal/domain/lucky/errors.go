package lucky

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeNotEligible        shared.ErrorCode = "NOT_ELIGIBLE"
	ErrCodeAlreadyClaimed     shared.ErrorCode = "ALREADY_CLAIMED"
	ErrCodeExpired            shared.ErrorCode = "EXPIRED"
	ErrCodeInvalidLuckyNumber shared.ErrorCode = "LUCKY_NUMBER_INVALID"
	ErrCodeInvalidRule        shared.ErrorCode = "LUCKY_RULE_INVALID"
	ErrCodeInvalidDiscount    shared.ErrorCode = "LUCKY_DISCOUNT_INVALID"
	ErrCodeInvalidDiscountID  shared.ErrorCode = "LUCKY_DISCOUNT_ID_INVALID"
	ErrCodeInvalidClaimID     shared.ErrorCode = "LUCKY_CLAIM_ID_INVALID"
	ErrCodeInvalidUserID      shared.ErrorCode = "USER_ID_INVALID"
	ErrCodeDiscountNotFound   shared.ErrorCode = "LUCKY_DISCOUNT_NOT_FOUND"
	ErrCodeClaimNotFound      shared.ErrorCode = "LUCKY_CLAIM_NOT_FOUND"
)

// ===========================
// 預定義錯誤
// ===========================

// 領取流程錯誤（客人可見）
var (
	ErrNotEligible = &shared.DomainError{
		Code:    ErrCodeNotEligible,
		Message: "Your lucky number doesn't unlock this discount. Try again on your next visit!",
	}

	ErrAlreadyClaimed = &shared.DomainError{
		Code:    ErrCodeAlreadyClaimed,
		Message: "You've already claimed this lucky discount. Use your existing code at checkout.",
	}

	ErrExpired = &shared.DomainError{
		Code:    ErrCodeExpired,
		Message: "This lucky discount has ended. Keep an eye out for our next offer.",
	}

	ErrDiscountNotFound = &shared.DomainError{
		Code:    ErrCodeDiscountNotFound,
		Message: "We couldn't find that lucky discount. Refresh the page to see current offers.",
	}

	ErrClaimNotFound = &shared.DomainError{
		Code:    ErrCodeClaimNotFound,
		Message: "You haven't claimed this lucky discount yet.",
	}
)

// 輸入與設定錯誤
var (
	ErrInvalidLuckyNumber = &shared.DomainError{
		Code:    ErrCodeInvalidLuckyNumber,
		Message: "Lucky numbers run from 1 to 100.",
	}

	ErrInvalidRule = &shared.DomainError{
		Code:    ErrCodeInvalidRule,
		Message: "The winning rule is invalid. Use numbers between 1 and 100 and save again.",
	}

	ErrInvalidDiscount = &shared.DomainError{
		Code:    ErrCodeInvalidDiscount,
		Message: "The lucky discount is invalid. Check the name, code, percentage and dates.",
	}

	ErrInvalidDiscountID = &shared.DomainError{
		Code:    ErrCodeInvalidDiscountID,
		Message: "Invalid lucky discount ID.",
	}

	ErrInvalidClaimID = &shared.DomainError{
		Code:    ErrCodeInvalidClaimID,
		Message: "Invalid lucky discount claim.",
	}

	ErrInvalidUserID = &shared.DomainError{
		Code:    ErrCodeInvalidUserID,
		Message: "Invalid user ID. Please sign in again.",
	}
)
