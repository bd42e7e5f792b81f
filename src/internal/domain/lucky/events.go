package lucky

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeDiscountClaimed 幸運折扣已領取
const EventTypeDiscountClaimed = "lucky.discount_claimed"

// DiscountClaimedEvent 幸運折扣已領取事件
//
// 攜帶寄送通知信所需的全部資料，訂閱者不需再查詢資料庫。
type DiscountClaimedEvent struct {
	eventID    string
	occurredAt time.Time

	ClaimID         string
	DiscountID      string
	UserID          string
	Email           string
	DiscountName    string
	DiscountCode    string
	DiscountPercent int
	LuckyNumber     int
	ExpiresAt       time.Time
}

// NewDiscountClaimedEvent 創建幸運折扣已領取事件
func NewDiscountClaimedEvent(claim *Claim, discount Discount, email string) *DiscountClaimedEvent {
	return &DiscountClaimedEvent{
		eventID:         uuid.New().String(),
		occurredAt:      claim.createdAt,
		ClaimID:         claim.id.String(),
		DiscountID:      discount.ID.String(),
		UserID:          claim.userID.String(),
		Email:           email,
		DiscountName:    discount.Name,
		DiscountCode:    claim.discountCode,
		DiscountPercent: discount.DiscountPercent,
		LuckyNumber:     claim.luckyNumber.Int(),
		ExpiresAt:       claim.expiresAt,
	}
}

func (e *DiscountClaimedEvent) EventID() string { return e.eventID }
func (e *DiscountClaimedEvent) EventType() string { return EventTypeDiscountClaimed }
func (e *DiscountClaimedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *DiscountClaimedEvent) AggregateID() string { return e.ClaimID }
