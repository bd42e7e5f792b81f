package schema

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/spinwheel"
)

// Models 所有模組的資料表
func Models() []interface{} {
	var models []interface{}
	models = append(models, loyalty.Models()...)
	models = append(models, lucky.Models()...)
	models = append(models, spinwheel.Models()...)
	models = append(models, inventory.Models()...)
	return models
}

// Migrate 建立或更新所有資料表與索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
