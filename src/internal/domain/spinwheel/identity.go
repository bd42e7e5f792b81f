package spinwheel

import "strings"

// Identity 抽獎者身分
//
// 已登入客人以 UserID 計算次數；訪客以前端產生的 SessionID 計算。
// 兩者恰好其一有值。
type Identity struct {
	userID    UserID
	sessionID string
}

// NewUserIdentity 已登入客人
func NewUserIdentity(userID UserID) (Identity, error) {
	if userID.IsEmpty() {
		return Identity{}, ErrInvalidIdentity.WithContext("reason", "user id cannot be empty")
	}
	return Identity{userID: userID}, nil
}

// NewGuestIdentity 訪客
func NewGuestIdentity(sessionID string) (Identity, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || len(sessionID) > 128 {
		return Identity{}, ErrInvalidIdentity.WithContext("reason", "session id must be 1-128 characters")
	}
	return Identity{sessionID: sessionID}, nil
}

// IsGuest 是否為訪客
func (i Identity) IsGuest() bool {
	return i.userID.IsEmpty()
}

// UserID 已登入客人的 ID（訪客為零值）
func (i Identity) UserID() UserID {
	return i.userID
}

// SessionID 訪客 session（已登入客人為空字串）
func (i Identity) SessionID() string {
	return i.sessionID
}

// String 用於日誌
func (i Identity) String() string {
	if i.IsGuest() {
		return "session:" + i.sessionID
	}
	return "user:" + i.userID.String()
}
