package lucky

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ClaimRepository 領取紀錄倉儲實現（GORM）
//
// 重複領取由 (discount_id, user_id) 唯一索引擋下，並發請求只有一筆成功
type ClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository 創建倉儲實例
func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Save 保存新的領取紀錄
func (r *ClaimRepository) Save(tx shared.TransactionContext, claim *lucky.Claim) error {
	if err := persistence.Conn(r.db, tx).Create(toClaimGORM(claim)).Error; err != nil {
		if persistence.IsUniqueConstraintError(err) {
			return lucky.ErrAlreadyClaimed.WithContext(
				"discount_id", claim.DiscountID().String(),
				"user_id", claim.UserID().String(),
			)
		}
		return persistence.Unavailable(err)
	}
	return nil
}

// FindByDiscountAndUser 查詢使用者在某活動的領取紀錄
func (r *ClaimRepository) FindByDiscountAndUser(tx shared.TransactionContext, discountID lucky.DiscountID, userID lucky.UserID) (*lucky.Claim, error) {
	var model ClaimGORM
	result := persistence.Conn(r.db, tx).
		Where("discount_id = ? AND user_id = ?", discountID.String(), userID.String()).
		First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return nil, lucky.ErrClaimNotFound.WithContext(
				"discount_id", discountID.String(),
				"user_id", userID.String(),
			)
		}
		return nil, persistence.Unavailable(result.Error)
	}
	return model.toDomain()
}

// ListByUser 列出使用者所有領取紀錄（新到舊）
func (r *ClaimRepository) ListByUser(tx shared.TransactionContext, userID lucky.UserID) ([]*lucky.Claim, error) {
	var models []ClaimGORM
	err := persistence.Conn(r.db, tx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.Unavailable(err)
	}

	claims := make([]*lucky.Claim, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, nil
}
