package loyalty

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// TransactionRepository 積分流水倉儲實現（GORM，只新增）
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 創建倉儲實例
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append 新增一筆流水
func (r *TransactionRepository) Append(tx shared.TransactionContext, entry *loyalty.LoyaltyTransaction) error {
	if err := persistence.Conn(r.db, tx).Create(toTransactionGORM(entry)).Error; err != nil {
		return persistence.Unavailable(err)
	}
	return nil
}

// ListByUserID 依建立時間倒序列出流水
func (r *TransactionRepository) ListByUserID(tx shared.TransactionContext, userID loyalty.UserID, limit int) ([]*loyalty.LoyaltyTransaction, error) {
	query := persistence.Conn(r.db, tx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []TransactionGORM
	if err := query.Find(&models).Error; err != nil {
		return nil, persistence.Unavailable(err)
	}

	entries := make([]*loyalty.LoyaltyTransaction, 0, len(models))
	for i := range models {
		entry, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
