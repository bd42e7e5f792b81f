package inventory

import "github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"

// SettingsRepository 庫存設定倉儲（單列設定）
type SettingsRepository interface {
	// Get 讀取設定；尚未設定時返回 DefaultSettings()
	Get(tx shared.TransactionContext) (Settings, error)

	// Save 儲存設定（Upsert）
	Save(tx shared.TransactionContext, settings Settings) error
}

// ProductRepository 商品庫存倉儲
type ProductRepository interface {
	// FindByID 錯誤：ErrProductNotFound
	FindByID(tx shared.TransactionContext, id ProductID) (*Product, error)

	// ListAll 列出所有商品庫存（依名稱）
	ListAll(tx shared.TransactionContext) ([]ProductStock, error)

	// Save 新增或更新庫存數量（Upsert）
	Save(tx shared.TransactionContext, product *Product) error
}
