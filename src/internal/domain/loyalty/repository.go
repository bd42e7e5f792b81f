package loyalty

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// ===========================
// Repository 介面
// ===========================

// AccountRepository 積分帳戶倉儲介面
//
// 寫操作（Save / Update）的 tx 必須 non-nil；讀操作 tx 可為 nil。
type AccountRepository interface {
	// Save 保存新的積分帳戶
	// 錯誤：ErrAccountAlreadyExists（同一 UserID 已有帳戶，由唯一索引保證）
	Save(tx shared.TransactionContext, account *LoyaltyAccount) error

	// FindByUserID 根據使用者 ID 查找積分帳戶
	// 錯誤：ErrAccountNotFound
	FindByUserID(tx shared.TransactionContext, userID UserID) (*LoyaltyAccount, error)

	// FindByUserIDForUpdate 在事務中讀取並鎖定帳戶，直到事務結束
	// 錯誤：ErrAccountNotFound
	FindByUserIDForUpdate(tx shared.TransactionContext, userID UserID) (*LoyaltyAccount, error)

	// Update 以樂觀鎖更新積分帳戶（version 與讀取時相同才寫入）
	// 錯誤：ErrAccountNotFound、ErrConcurrentUpdate
	Update(tx shared.TransactionContext, account *LoyaltyAccount) error
}

// TransactionRepository 積分流水倉儲介面（只新增，不修改不刪除）
type TransactionRepository interface {
	// Append 新增一筆流水
	Append(tx shared.TransactionContext, entry *LoyaltyTransaction) error

	// ListByUserID 依建立時間倒序列出流水；limit <= 0 表示全部
	ListByUserID(tx shared.TransactionContext, userID UserID, limit int) ([]*LoyaltyTransaction, error)
}

// SettingsRepository 積分規則設定倉儲（單列設定）
type SettingsRepository interface {
	// Get 讀取設定；尚未設定時返回 DefaultSettings()
	Get(tx shared.TransactionContext) (Settings, error)

	// Save 儲存設定（Upsert）
	Save(tx shared.TransactionContext, settings Settings) error
}
