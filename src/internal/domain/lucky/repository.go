package lucky

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// DiscountRepository 幸運折扣活動倉儲介面
type DiscountRepository interface {
	// FindRunning 查詢在 now 進行中的活動（啟用、已開始、未過期）
	FindRunning(tx shared.TransactionContext, now time.Time) ([]Discount, error)

	// FindByID 查詢單一活動
	// 錯誤：ErrDiscountNotFound
	FindByID(tx shared.TransactionContext, id DiscountID) (Discount, error)

	// Save 新增或更新活動（Upsert）
	Save(tx shared.TransactionContext, discount Discount) error
}

// ClaimRepository 領取紀錄倉儲介面
type ClaimRepository interface {
	// Save 保存新的領取紀錄
	// 錯誤：ErrAlreadyClaimed（(discount_id, user_id) 唯一索引衝突）
	Save(tx shared.TransactionContext, claim *Claim) error

	// FindByDiscountAndUser 查詢使用者在某活動的領取紀錄
	// 錯誤：ErrClaimNotFound
	FindByDiscountAndUser(tx shared.TransactionContext, discountID DiscountID, userID UserID) (*Claim, error)

	// ListByUser 列出使用者所有領取紀錄（新到舊）
	ListByUser(tx shared.TransactionContext, userID UserID) ([]*Claim, error)
}
