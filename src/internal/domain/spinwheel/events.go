package spinwheel

import (
	"time"

	"github.com/google/uuid"
)

// EventTypePrizeWon 轉盤中獎
const EventTypePrizeWon = "spinwheel.prize_won"

// PrizeWonEvent 轉盤中獎事件
type PrizeWonEvent struct {
	eventID    string
	occurredAt time.Time

	EntryID         string
	Identity        string
	PrizeLabel      string
	PrizeValue      string
	DiscountPercent *int
	CouponCode      string
	ExpiresAt       time.Time
}

// NewPrizeWonEvent 創建中獎事件
func NewPrizeWonEvent(entry *HistoryEntry, discountPercent *int) *PrizeWonEvent {
	return &PrizeWonEvent{
		eventID:         uuid.New().String(),
		occurredAt:      entry.createdAt,
		EntryID:         entry.id.String(),
		Identity:        entry.identity.String(),
		PrizeLabel:      entry.prizeLabel,
		PrizeValue:      entry.prizeValue,
		DiscountPercent: discountPercent,
		CouponCode:      entry.couponCode,
		ExpiresAt:       entry.expiresAt,
	}
}

func (e *PrizeWonEvent) EventID() string { return e.eventID }
func (e *PrizeWonEvent) EventType() string { return EventTypePrizeWon }
func (e *PrizeWonEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *PrizeWonEvent) AggregateID() string { return e.EntryID }
