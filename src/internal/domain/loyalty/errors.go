package loyalty

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeNegativePointsAmount   shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInvalidPointsAmount    shared.ErrorCode = "POINTS_INVALID"
	ErrCodeInsufficientPoints     shared.ErrorCode = "POINTS_INSUFFICIENT"
	ErrCodeBelowMinimumRedemption shared.ErrorCode = "POINTS_BELOW_MINIMUM"
	ErrCodeInvalidTransactionType shared.ErrorCode = "TRANSACTION_TYPE_INVALID"
	ErrCodeInvalidAccountID       shared.ErrorCode = "ACCOUNT_ID_INVALID"
	ErrCodeInvalidUserID          shared.ErrorCode = "USER_ID_INVALID"
	ErrCodeInvalidTransactionID   shared.ErrorCode = "TRANSACTION_ID_INVALID"
	ErrCodeCorruptedAccount       shared.ErrorCode = "ACCOUNT_CORRUPTED"
	ErrCodeLedgerMismatch         shared.ErrorCode = "LEDGER_MISMATCH"
	ErrCodeAccountNotFound        shared.ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountAlreadyExists   shared.ErrorCode = "ACCOUNT_ALREADY_EXISTS"
	ErrCodeConcurrentUpdate       shared.ErrorCode = "ACCOUNT_CONCURRENT_UPDATE"
	ErrCodeProgramDisabled        shared.ErrorCode = "LOYALTY_DISABLED"
	ErrCodeInvalidLoyaltySettings shared.ErrorCode = "LOYALTY_SETTINGS_INVALID"
)

// ===========================
// 預定義錯誤
// ===========================

// 積分數量相關錯誤
var (
	ErrNegativePointsAmount = &shared.DomainError{
		Code:    ErrCodeNegativePointsAmount,
		Message: "Points cannot be negative.",
	}

	ErrInvalidPointsAmount = &shared.DomainError{
		Code:    ErrCodeInvalidPointsAmount,
		Message: "Enter a points amount greater than zero.",
	}

	ErrInsufficientPoints = &shared.DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "You don't have enough points for this redemption. Lower the amount and try again.",
	}

	ErrBelowMinimumRedemption = &shared.DomainError{
		Code:    ErrCodeBelowMinimumRedemption,
		Message: "This order doesn't meet the minimum points needed to redeem. Keep shopping to earn more points.",
	}

	ErrInvalidTransactionType = &shared.DomainError{
		Code:    ErrCodeInvalidTransactionType,
		Message: "Unknown points transaction type.",
	}
)

// 帳戶相關錯誤
var (
	ErrInvalidAccountID = &shared.DomainError{
		Code:    ErrCodeInvalidAccountID,
		Message: "Invalid loyalty account ID.",
	}

	ErrInvalidUserID = &shared.DomainError{
		Code:    ErrCodeInvalidUserID,
		Message: "Invalid user ID. Please sign in again.",
	}

	ErrInvalidTransactionID = &shared.DomainError{
		Code:    ErrCodeInvalidTransactionID,
		Message: "Invalid points transaction ID.",
	}

	// ErrCorruptedAccount 資料庫中的帳戶違反不變條件
	ErrCorruptedAccount = &shared.DomainError{
		Code:    ErrCodeCorruptedAccount,
		Message: "Your points balance needs attention from our support team.",
	}

	// ErrLedgerMismatch 流水總和與可用積分不一致
	ErrLedgerMismatch = &shared.DomainError{
		Code:    ErrCodeLedgerMismatch,
		Message: "Points history does not match the account balance.",
	}

	ErrAccountNotFound = &shared.DomainError{
		Code:    ErrCodeAccountNotFound,
		Message: "You don't have a rewards account yet. Make a purchase or sign up to start earning points.",
	}

	ErrAccountAlreadyExists = &shared.DomainError{
		Code:    ErrCodeAccountAlreadyExists,
		Message: "A rewards account already exists for this user.",
	}

	// ErrConcurrentUpdate 帳戶在讀取後已被其他事務修改（版本號不符）
	ErrConcurrentUpdate = &shared.DomainError{
		Code:    ErrCodeConcurrentUpdate,
		Message: "Your points balance changed while we were updating it. Please try again.",
	}
)

// 設定相關錯誤
var (
	ErrProgramDisabled = &shared.DomainError{
		Code:    ErrCodeProgramDisabled,
		Message: "The rewards program is paused right now. Your points are safe.",
	}

	ErrInvalidSettings = &shared.DomainError{
		Code:    ErrCodeInvalidLoyaltySettings,
		Message: "Loyalty settings are invalid. Check the rates and percentages and save again.",
	}
)
