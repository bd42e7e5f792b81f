package inventory

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// ProductRepository
// ===========================

// ProductRepository 商品庫存倉儲實現（GORM）
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 創建倉儲實例
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID 查詢商品庫存
func (r *ProductRepository) FindByID(tx shared.TransactionContext, id inventory.ProductID) (*inventory.Product, error) {
	var model ProductStockGORM
	result := persistence.Conn(r.db, tx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return nil, inventory.ErrProductNotFound.WithContext("product_id", id.String())
		}
		return nil, persistence.Unavailable(result.Error)
	}
	return model.toDomain()
}

// ListAll 列出所有商品庫存（依名稱）
func (r *ProductRepository) ListAll(tx shared.TransactionContext) ([]inventory.ProductStock, error) {
	var models []ProductStockGORM
	if err := persistence.Conn(r.db, tx).Order("name").Find(&models).Error; err != nil {
		return nil, persistence.Unavailable(err)
	}

	stocks := make([]inventory.ProductStock, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, p.Stock())
	}
	return stocks, nil
}

// Save 新增或更新庫存數量（Upsert）
func (r *ProductRepository) Save(tx shared.TransactionContext, product *inventory.Product) error {
	if err := persistence.Conn(r.db, tx).Save(toProductGORM(product)).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}

// ===========================
// SettingsRepository
// ===========================

// SettingsRepository 庫存設定倉儲（單列）
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 創建倉儲實例
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get 讀取設定；尚無設定列時返回預設值
func (r *SettingsRepository) Get(tx shared.TransactionContext) (inventory.Settings, error) {
	var model SettingsGORM
	result := persistence.Conn(r.db, tx).Where("id = ?", settingsRowID).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return inventory.DefaultSettings(), nil
		}
		return inventory.Settings{}, persistence.Unavailable(result.Error)
	}
	return model.toDomain(), nil
}

// Save 儲存設定（Upsert）
func (r *SettingsRepository) Save(tx shared.TransactionContext, settings inventory.Settings) error {
	if err := persistence.Conn(r.db, tx).Save(toSettingsGORM(settings)).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}
