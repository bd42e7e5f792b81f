package lucky

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// Claim 聚合根
// ===========================

// Claim 幸運折扣領取紀錄
//
// 業務不變條件：
// - 每個 (DiscountID, UserID) 最多一筆（資料庫唯一索引保證）
// - LuckyNumber 必須符合折扣規則
// - ExpiresAt 等於活動的 ExpiresAt
type Claim struct {
	id           ClaimID
	discountID   DiscountID
	userID       UserID
	luckyNumber  LuckyNumber
	discountCode string
	expiresAt    time.Time
	createdAt    time.Time

	events []shared.DomainEvent
}

// Claimant 領取者
type Claimant struct {
	Seed  Seed
	Email string // 通知信收件人，可為空
}

// NewClaim 領取幸運折扣
//
// 參數 luckyNumber 為前端顯示給客人的號碼，必須與 seed 推導出的號碼一致，
// 否則視為不符合資格（不能自行挑選號碼）。
//
// 錯誤（依檢查順序）：
// - ErrExpired：活動已過期
// - ErrNotEligible：活動未啟用 / 未開始 / 號碼不一致 / 號碼不符合規則
func NewClaim(
	discount Discount,
	claimant Claimant,
	luckyNumber LuckyNumber,
	now time.Time,
) (*Claim, error) {
	if discount.IsExpired(now) {
		return nil, ErrExpired.WithContext(
			"discount_id", discount.ID.String(),
			"expired_at", discount.ExpiresAt,
		)
	}
	if !discount.IsActive || !discount.HasStarted(now) {
		return nil, ErrNotEligible.WithContext(
			"discount_id", discount.ID.String(),
			"reason", "discount is not running",
		)
	}
	if DeriveLuckyNumber(claimant.Seed) != luckyNumber {
		return nil, ErrNotEligible.WithContext(
			"discount_id", discount.ID.String(),
			"reason", "lucky number does not belong to this session",
		)
	}
	if !discount.Matches(luckyNumber) {
		return nil, ErrNotEligible.WithContext(
			"discount_id", discount.ID.String(),
			"lucky_number", luckyNumber.Int(),
		)
	}

	claim := &Claim{
		id:           NewClaimID(),
		discountID:   discount.ID,
		userID:       claimant.Seed.UserID,
		luckyNumber:  luckyNumber,
		discountCode: discount.Code,
		expiresAt:    discount.ExpiresAt,
		createdAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}

	claim.events = append(claim.events, NewDiscountClaimedEvent(claim, discount, claimant.Email))

	return claim, nil
}

// ReconstructClaim 從持久化存儲重建領取紀錄（不發布事件）
func ReconstructClaim(
	id ClaimID,
	discountID DiscountID,
	userID UserID,
	luckyNumber int,
	discountCode string,
	expiresAt time.Time,
	createdAt time.Time,
) (*Claim, error) {
	number, err := NewLuckyNumber(luckyNumber)
	if err != nil {
		return nil, err
	}
	if id.IsEmpty() || discountID.IsEmpty() || userID.IsEmpty() {
		return nil, ErrInvalidClaimID.WithContext("reason", "claim has empty identifiers in database")
	}

	return &Claim{
		id:           id,
		discountID:   discountID,
		userID:       userID,
		luckyNumber:  number,
		discountCode: discountCode,
		expiresAt:    expiresAt,
		createdAt:    createdAt,
		events:       make([]shared.DomainEvent, 0),
	}, nil
}

func (c *Claim) ID() ClaimID { return c.id }
func (c *Claim) DiscountID() DiscountID { return c.discountID }
func (c *Claim) UserID() UserID { return c.userID }
func (c *Claim) LuckyNumber() LuckyNumber { return c.luckyNumber }
func (c *Claim) DiscountCode() string { return c.discountCode }
func (c *Claim) ExpiresAt() time.Time { return c.expiresAt }
func (c *Claim) CreatedAt() time.Time { return c.createdAt }

// IsUsable 折扣碼在 now 是否仍可使用
func (c *Claim) IsUsable(now time.Time) bool {
	return now.Before(c.expiresAt)
}

// PullEvents 獲取所有待發布事件並清空列表
func (c *Claim) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = make([]shared.DomainEvent, 0)
	return events
}
