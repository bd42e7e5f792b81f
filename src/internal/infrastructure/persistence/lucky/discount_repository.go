package lucky

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// DiscountRepository 幸運折扣活動倉儲實現（GORM）
type DiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 創建倉儲實例
func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// FindRunning 查詢在 now 進行中的活動（starts_at <= now < expires_at）
func (r *DiscountRepository) FindRunning(tx shared.TransactionContext, now time.Time) ([]lucky.Discount, error) {
	now = now.UTC()

	var models []DiscountGORM
	err := persistence.Conn(r.db, tx).
		Where("is_active = ? AND starts_at <= ? AND expires_at > ?", true, now, now).
		Order("discount_percent DESC").
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, persistence.Unavailable(err)
	}

	discounts := make([]lucky.Discount, 0, len(models))
	for i := range models {
		d, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}

// FindByID 查詢單一活動
func (r *DiscountRepository) FindByID(tx shared.TransactionContext, id lucky.DiscountID) (lucky.Discount, error) {
	var model DiscountGORM
	result := persistence.Conn(r.db, tx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return lucky.Discount{}, lucky.ErrDiscountNotFound.WithContext("discount_id", id.String())
		}
		return lucky.Discount{}, persistence.Unavailable(result.Error)
	}
	return model.toDomain()
}

// Save 新增或更新活動（Upsert）
func (r *DiscountRepository) Save(tx shared.TransactionContext, discount lucky.Discount) error {
	model, err := toDiscountGORM(discount)
	if err != nil {
		return err
	}
	if err := persistence.Conn(r.db, tx).Save(model).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}
