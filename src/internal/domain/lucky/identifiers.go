package lucky

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// DiscountMarker 是 DiscountID 的標記類型
type DiscountMarker struct{}

// DiscountID 幸運折扣活動 ID
type DiscountID = shared.EntityID[DiscountMarker]

// NewDiscountID 生成新的折扣活動 ID
func NewDiscountID() DiscountID {
	return shared.NewEntityID[DiscountMarker]()
}

// DiscountIDFromString 從字串解析折扣活動 ID
func DiscountIDFromString(s string) (DiscountID, error) {
	return shared.EntityIDFromString[DiscountMarker](s, ErrInvalidDiscountID)
}

// ClaimMarker 是 ClaimID 的標記類型
type ClaimMarker struct{}

// ClaimID 領取紀錄 ID
type ClaimID = shared.EntityID[ClaimMarker]

// NewClaimID 生成新的領取紀錄 ID
func NewClaimID() ClaimID {
	return shared.NewEntityID[ClaimMarker]()
}

// ClaimIDFromString 從字串解析領取紀錄 ID
func ClaimIDFromString(s string) (ClaimID, error) {
	return shared.EntityIDFromString[ClaimMarker](s, ErrInvalidClaimID)
}

// UserMarker 是 UserID 的標記類型
type UserMarker struct{}

// UserID 使用者 ID（由外部認證服務發放）
type UserID = shared.EntityID[UserMarker]

// NewUserID 生成新的使用者 ID（僅測試使用）
func NewUserID() UserID {
	return shared.NewEntityID[UserMarker]()
}

// UserIDFromString 從字串解析使用者 ID
func UserIDFromString(s string) (UserID, error) {
	return shared.EntityIDFromString[UserMarker](s, ErrInvalidUserID)
}
