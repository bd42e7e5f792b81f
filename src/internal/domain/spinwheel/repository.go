package spinwheel

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// PrizeRepository 獎項倉儲介面
type PrizeRepository interface {
	// ListAll 列出所有獎項（依 SortOrder）
	ListAll(tx shared.TransactionContext) ([]Prize, error)

	// ReplaceAll 以新的一組獎項取代全部獎項（管理端整組儲存）
	ReplaceAll(tx shared.TransactionContext, prizes []Prize) error
}

// SettingsRepository 轉盤設定倉儲（單列設定）
type SettingsRepository interface {
	// Get 讀取設定；尚未設定時返回 DefaultSettings()
	Get(tx shared.TransactionContext) (Settings, error)

	// Save 儲存設定（Upsert）
	Save(tx shared.TransactionContext, settings Settings) error
}

// HistoryRepository 抽獎紀錄倉儲介面
type HistoryRepository interface {
	// Save 保存新的抽獎紀錄
	// 錯誤：ErrCouponConflict（coupon_code 唯一索引衝突）、ErrSlotTaken（當日名額已被佔用）
	Save(tx shared.TransactionContext, entry *HistoryEntry) error

	// MarkRedeemed 將尚未兌換的紀錄標記為已兌換（條件更新）
	// 錯誤：ErrCouponNotFound、ErrAlreadyRedeemed（已被其他請求兌換）
	MarkRedeemed(tx shared.TransactionContext, entry *HistoryEntry) error

	// CountSince 計算抽獎者在 since 之後（含）的抽獎次數
	CountSince(tx shared.TransactionContext, identity Identity, since time.Time) (int, error)

	// FindByCouponCode 依優惠券代碼查詢
	// 錯誤：ErrCouponNotFound
	FindByCouponCode(tx shared.TransactionContext, code string) (*HistoryEntry, error)

	// ListByIdentity 列出抽獎者的紀錄（新到舊）；limit <= 0 表示全部
	ListByIdentity(tx shared.TransactionContext, identity Identity, limit int) ([]*HistoryEntry, error)

	// ExpireUnredeemed 將 createdAt < cutoff 且未兌換、尚未過期的紀錄設為在 now 過期
	// 返回影響筆數
	ExpireUnredeemed(tx shared.TransactionContext, cutoff time.Time, now time.Time) (int64, error)

	// DeleteSince 刪除 since 之後（含）建立的所有紀錄，返回刪除筆數
	DeleteSince(tx shared.TransactionContext, since time.Time) (int64, error)
}
