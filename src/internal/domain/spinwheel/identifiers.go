package spinwheel

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// PrizeMarker 是 PrizeID 的標記類型
type PrizeMarker struct{}

// PrizeID 轉盤獎項 ID
type PrizeID = shared.EntityID[PrizeMarker]

// NewPrizeID 生成新的獎項 ID
func NewPrizeID() PrizeID {
	return shared.NewEntityID[PrizeMarker]()
}

// PrizeIDFromString 從字串解析獎項 ID
func PrizeIDFromString(s string) (PrizeID, error) {
	return shared.EntityIDFromString[PrizeMarker](s, ErrInvalidPrizeID)
}

// EntryMarker 是 EntryID 的標記類型
type EntryMarker struct{}

// EntryID 抽獎紀錄 ID
type EntryID = shared.EntityID[EntryMarker]

// NewEntryID 生成新的抽獎紀錄 ID
func NewEntryID() EntryID {
	return shared.NewEntityID[EntryMarker]()
}

// EntryIDFromString 從字串解析抽獎紀錄 ID
func EntryIDFromString(s string) (EntryID, error) {
	return shared.EntityIDFromString[EntryMarker](s, ErrInvalidEntryID)
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
	return shared.EntityIDFromString[UserMarker](s, ErrInvalidIdentity)
}
