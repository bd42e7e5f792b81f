package spinwheel

import (
	"strings"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// HistoryRepository 抽獎紀錄倉儲實現（GORM）
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 創建倉儲實例
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save 保存新的抽獎紀錄
//
// 唯一索引衝突：
//   - quota slot → spinwheel.ErrSlotTaken（並發抽獎，由 use case 重新計算次數）
//   - coupon_code → spinwheel.ErrCouponConflict（由 use case 換代碼重試）
func (r *HistoryRepository) Save(tx shared.TransactionContext, entry *spinwheel.HistoryEntry) error {
	if err := persistence.Conn(r.db, tx).Create(toHistoryGORM(entry)).Error; err != nil {
		if !persistence.IsUniqueConstraintError(err) {
			return persistence.Unavailable(err)
		}
		if slot, ok := entry.QuotaSlot(); ok && isQuotaSlotViolation(err) {
			return spinwheel.ErrSlotTaken.WithContext(
				"identity", entry.Identity().String(),
				"quota_day", slot.Day,
				"quota_slot", slot.Number,
			)
		}
		return spinwheel.ErrCouponConflict.WithContext("coupon_code", entry.CouponCode())
	}
	return nil
}

// isQuotaSlotViolation sqlite 回報欄位名，postgres / mysql 回報索引名，兩者都含 quota_slot
func isQuotaSlotViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "quota_slot")
}

// MarkRedeemed 以條件更新將未兌換的紀錄標記為已兌換
//
// 只有 is_redeemed = false 的列會被更新，同一張優惠券並發兌換時只有一個成功：
//   - 紀錄不存在 → spinwheel.ErrCouponNotFound
//   - 已被兌換 → spinwheel.ErrAlreadyRedeemed
func (r *HistoryRepository) MarkRedeemed(tx shared.TransactionContext, entry *spinwheel.HistoryEntry) error {
	conn := persistence.Conn(r.db, tx)
	result := conn.
		Model(&HistoryGORM{}).
		Where("id = ? AND is_redeemed = ?", entry.ID().String(), false).
		Update("is_redeemed", true)
	if result.Error != nil {
		return persistence.Unavailable(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := conn.Model(&HistoryGORM{}).Where("id = ?", entry.ID().String()).Count(&count).Error; err != nil {
		return persistence.Unavailable(err)
	}
	if count == 0 {
		return spinwheel.ErrCouponNotFound.WithContext("entry_id", entry.ID().String())
	}
	return spinwheel.ErrAlreadyRedeemed.WithContext("coupon_code", entry.CouponCode())
}

// CountSince 計算抽獎者在 since 之後（含）的抽獎次數
func (r *HistoryRepository) CountSince(tx shared.TransactionContext, identity spinwheel.Identity, since time.Time) (int, error) {
	var count int64
	err := byIdentity(persistence.Conn(r.db, tx).Model(&HistoryGORM{}), identity).
		Where("created_at >= ?", since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, persistence.Unavailable(err)
	}
	return int(count), nil
}

// FindByCouponCode 依優惠券代碼查詢
func (r *HistoryRepository) FindByCouponCode(tx shared.TransactionContext, code string) (*spinwheel.HistoryEntry, error) {
	var model HistoryGORM
	result := persistence.Conn(r.db, tx).Where("coupon_code = ?", code).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return nil, spinwheel.ErrCouponNotFound.WithContext("coupon_code", code)
		}
		return nil, persistence.Unavailable(result.Error)
	}
	return model.toDomain()
}

// ListByIdentity 列出抽獎者的紀錄（新到舊）
func (r *HistoryRepository) ListByIdentity(tx shared.TransactionContext, identity spinwheel.Identity, limit int) ([]*spinwheel.HistoryEntry, error) {
	query := byIdentity(persistence.Conn(r.db, tx), identity).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []HistoryGORM
	if err := query.Find(&models).Error; err != nil {
		return nil, persistence.Unavailable(err)
	}

	entries := make([]*spinwheel.HistoryEntry, 0, len(models))
	for i := range models {
		e, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ExpireUnredeemed 將 created_at < cutoff 且未兌換、尚未過期的紀錄設為在 now 過期
func (r *HistoryRepository) ExpireUnredeemed(tx shared.TransactionContext, cutoff time.Time, now time.Time) (int64, error) {
	result := persistence.Conn(r.db, tx).
		Model(&HistoryGORM{}).
		Where("is_redeemed = ? AND created_at < ? AND expires_at > ?", false, cutoff.UTC(), now.UTC()).
		Update("expires_at", now.UTC())
	if result.Error != nil {
		return 0, persistence.Unavailable(result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteSince 刪除 since 之後（含）建立的所有紀錄
func (r *HistoryRepository) DeleteSince(tx shared.TransactionContext, since time.Time) (int64, error) {
	result := persistence.Conn(r.db, tx).
		Where("created_at >= ?", since.UTC()).
		Delete(&HistoryGORM{})
	if result.Error != nil {
		return 0, persistence.Unavailable(result.Error)
	}
	return result.RowsAffected, nil
}

func byIdentity(db *gorm.DB, identity spinwheel.Identity) *gorm.DB {
	if identity.IsGuest() {
		return db.Where("session_id = ?", identity.SessionID())
	}
	return db.Where("user_id = ?", identity.UserID().String())
}
