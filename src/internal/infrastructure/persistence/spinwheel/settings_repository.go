package spinwheel

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// SettingsRepository 轉盤設定倉儲（單列）
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 創建倉儲實例
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get 讀取設定；尚無設定列時返回預設值
func (r *SettingsRepository) Get(tx shared.TransactionContext) (spinwheel.Settings, error) {
	var model SettingsGORM
	result := persistence.Conn(r.db, tx).Where("id = ?", settingsRowID).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return spinwheel.DefaultSettings(), nil
		}
		return spinwheel.Settings{}, persistence.Unavailable(result.Error)
	}
	return model.toDomain(), nil
}

// Save 儲存設定（Upsert）
func (r *SettingsRepository) Save(tx shared.TransactionContext, settings spinwheel.Settings) error {
	if err := persistence.Conn(r.db, tx).Save(toSettingsGORM(settings)).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}
