package spinwheel

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// HistoryEntry 聚合根
// ===========================

// HistoryEntry 抽獎紀錄（同時是優惠券）
//
// 業務不變條件：
// - CouponCode 全域唯一
// - ExpiresAt = CreatedAt + ValidityDays
// - 已兌換的紀錄不能再兌換
type HistoryEntry struct {
	id         EntryID
	identity   Identity
	prizeID    PrizeID
	prizeLabel string
	prizeValue string
	couponCode string
	isRedeemed bool
	createdAt  time.Time
	expiresAt  time.Time
	slot       *QuotaSlot

	events []shared.DomainEvent
}

// NewHistoryEntry 建立抽獎紀錄並發布 PrizeWon 事件
func NewHistoryEntry(
	identity Identity,
	prize Prize,
	couponCode string,
	now time.Time,
	validityDays int,
) *HistoryEntry {
	entry := &HistoryEntry{
		id:         NewEntryID(),
		identity:   identity,
		prizeID:    prize.ID,
		prizeLabel: prize.Label,
		prizeValue: prize.Value,
		couponCode: couponCode,
		createdAt:  now,
		expiresAt:  now.AddDate(0, 0, validityDays),
		events:     make([]shared.DomainEvent, 0),
	}
	entry.events = append(entry.events, NewPrizeWonEvent(entry, prize.DiscountPercent))
	return entry
}

// ReconstructHistoryEntry 從資料庫重建（不發布事件）
func ReconstructHistoryEntry(
	id EntryID,
	identity Identity,
	prizeID PrizeID,
	prizeLabel string,
	prizeValue string,
	couponCode string,
	isRedeemed bool,
	createdAt time.Time,
	expiresAt time.Time,
) *HistoryEntry {
	return &HistoryEntry{
		id:         id,
		identity:   identity,
		prizeID:    prizeID,
		prizeLabel: prizeLabel,
		prizeValue: prizeValue,
		couponCode: couponCode,
		isRedeemed: isRedeemed,
		createdAt:  createdAt,
		expiresAt:  expiresAt,
		events:     make([]shared.DomainEvent, 0),
	}
}

func (e *HistoryEntry) ID() EntryID { return e.id }
func (e *HistoryEntry) Identity() Identity { return e.identity }
func (e *HistoryEntry) PrizeID() PrizeID { return e.prizeID }
func (e *HistoryEntry) PrizeLabel() string { return e.prizeLabel }
func (e *HistoryEntry) PrizeValue() string { return e.prizeValue }
func (e *HistoryEntry) CouponCode() string { return e.couponCode }
func (e *HistoryEntry) IsRedeemed() bool { return e.isRedeemed }
func (e *HistoryEntry) CreatedAt() time.Time { return e.createdAt }
func (e *HistoryEntry) ExpiresAt() time.Time { return e.expiresAt }

// QuotaSlot 佔用的每日名額；未指定名額的紀錄返回 false
func (e *HistoryEntry) QuotaSlot() (QuotaSlot, bool) {
	if e.slot == nil {
		return QuotaSlot{}, false
	}
	return *e.slot, true
}

// AssignQuotaSlot 設定此次抽獎佔用的名額（保存前）
func (e *HistoryEntry) AssignQuotaSlot(slot QuotaSlot) {
	e.slot = &slot
}

// IsExpired 優惠券在 now 是否已過期
func (e *HistoryEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Redeem 兌換優惠券
//
// 錯誤：ErrAlreadyRedeemed、ErrCouponExpired
func (e *HistoryEntry) Redeem(now time.Time) error {
	if e.isRedeemed {
		return ErrAlreadyRedeemed.WithContext("coupon_code", e.couponCode)
	}
	if e.IsExpired(now) {
		return ErrCouponExpired.WithContext(
			"coupon_code", e.couponCode,
			"expired_at", e.expiresAt,
		)
	}
	e.isRedeemed = true
	return nil
}

// ReassignCouponCode 優惠券代碼衝突時換一組（僅在尚未保存前使用）
func (e *HistoryEntry) ReassignCouponCode(code string) {
	e.couponCode = code
	for _, evt := range e.events {
		if won, ok := evt.(*PrizeWonEvent); ok {
			won.CouponCode = code
		}
	}
}

// PullEvents 獲取所有待發布事件並清空列表
func (e *HistoryEntry) PullEvents() []shared.DomainEvent {
	events := e.events
	e.events = make([]shared.DomainEvent, 0)
	return events
}
