package loyalty

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================

// AccountMarker 是 AccountID 的標記類型
type AccountMarker struct{}

// AccountID 積分帳戶的唯一標識符
type AccountID = shared.EntityID[AccountMarker]

// NewAccountID 生成新的積分帳戶 ID
func NewAccountID() AccountID {
	return shared.NewEntityID[AccountMarker]()
}

// AccountIDFromString 從字串解析積分帳戶 ID
func AccountIDFromString(s string) (AccountID, error) {
	return shared.EntityIDFromString[AccountMarker](s, ErrInvalidAccountID)
}

// UserMarker 是 UserID 的標記類型
type UserMarker struct{}

// UserID 使用者 ID
//
// 由外部認證服務發放（access token 的 sub），本服務只引用不產生。
type UserID = shared.EntityID[UserMarker]

// NewUserID 生成新的使用者 ID（僅測試與種子資料使用）
func NewUserID() UserID {
	return shared.NewEntityID[UserMarker]()
}

// UserIDFromString 從字串解析使用者 ID
func UserIDFromString(s string) (UserID, error) {
	return shared.EntityIDFromString[UserMarker](s, ErrInvalidUserID)
}

// TransactionMarker 是 TransactionID 的標記類型
type TransactionMarker struct{}

// TransactionID 積分流水 ID
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的積分流水 ID
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析積分流水 ID
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}
