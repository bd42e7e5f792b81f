package inventory

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeStockChanged 庫存數量已變更
const EventTypeStockChanged = "inventory.stock_changed"

// StockChangedEvent 庫存數量已變更事件
type StockChangedEvent struct {
	eventID    string
	occurredAt time.Time

	ProductID        ProductID
	ProductName      string
	PreviousQuantity int
	Quantity         int
}

// NewStockChangedEvent 創建庫存變更事件
func NewStockChangedEvent(productID ProductID, name string, previous, quantity int) *StockChangedEvent {
	return &StockChangedEvent{
		eventID:          uuid.New().String(),
		occurredAt:       time.Now(),
		ProductID:        productID,
		ProductName:      name,
		PreviousQuantity: previous,
		Quantity:         quantity,
	}
}

func (e *StockChangedEvent) EventID() string { return e.eventID }
func (e *StockChangedEvent) EventType() string { return EventTypeStockChanged }
func (e *StockChangedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *StockChangedEvent) AggregateID() string { return e.ProductID.String() }
