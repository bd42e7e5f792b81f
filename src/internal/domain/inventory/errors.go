package inventory

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

const (
	ErrCodeInvalidThresholds shared.ErrorCode = "INVALID_THRESHOLDS"
	ErrCodeNegativeStock     shared.ErrorCode = "STOCK_NEGATIVE"
	ErrCodeInvalidProductID  shared.ErrorCode = "PRODUCT_ID_INVALID"
	ErrCodeProductNotFound   shared.ErrorCode = "PRODUCT_NOT_FOUND"
)

var (
	// ErrInvalidThresholds 門檻設定錯誤（僅在管理端儲存時觸發）
	ErrInvalidThresholds = &shared.DomainError{
		Code:    ErrCodeInvalidThresholds,
		Message: "The critical stock level must be lower than the low stock level, and neither can be negative.",
	}

	ErrNegativeStock = &shared.DomainError{
		Code:    ErrCodeNegativeStock,
		Message: "Stock quantity cannot be negative.",
	}

	ErrInvalidProductID = &shared.DomainError{
		Code:    ErrCodeInvalidProductID,
		Message: "Invalid product ID.",
	}

	ErrProductNotFound = &shared.DomainError{
		Code:    ErrCodeProductNotFound,
		Message: "We couldn't find that product. It may have been removed.",
	}
)
