package spinwheel

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// PrizeRepository 轉盤獎項倉儲實現（GORM）
type PrizeRepository struct {
	db *gorm.DB
}

// NewPrizeRepository 創建倉儲實例
func NewPrizeRepository(db *gorm.DB) *PrizeRepository {
	return &PrizeRepository{db: db}
}

// ListAll 列出所有獎項（依 sort_order）
func (r *PrizeRepository) ListAll(tx shared.TransactionContext) ([]spinwheel.Prize, error) {
	var models []PrizeGORM
	if err := persistence.Conn(r.db, tx).Order("sort_order").Order("id").Find(&models).Error; err != nil {
		return nil, persistence.Unavailable(err)
	}

	prizes := make([]spinwheel.Prize, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		prizes = append(prizes, p)
	}
	return prizes, nil
}

// ReplaceAll 刪除全部獎項後寫入新的一組（需在事務中呼叫）
func (r *PrizeRepository) ReplaceAll(tx shared.TransactionContext, prizes []spinwheel.Prize) error {
	db := persistence.Conn(r.db, tx)

	if err := db.Where("1 = 1").Delete(&PrizeGORM{}).Error; err != nil {
		return persistence.Unavailable(err)
	}
	if len(prizes) == 0 {
		return nil
	}

	models := make([]PrizeGORM, 0, len(prizes))
	for _, p := range prizes {
		models = append(models, toPrizeGORM(p))
	}
	if err := db.Create(&models).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}
