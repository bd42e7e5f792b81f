package inventory

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// Product 商品庫存聚合
//
// 只負責庫存數量；商品其他資料由後台 CRUD 管理。
type Product struct {
	id        ProductID
	name      string
	quantity  int
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewProduct 建立商品庫存
func NewProduct(id ProductID, name string, quantity int) (*Product, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidProductID.WithContext("reason", "product id cannot be empty")
	}
	if quantity < 0 {
		return nil, ErrNegativeStock.WithContext("quantity", quantity)
	}
	return &Product{
		id:        id,
		name:      name,
		quantity:  quantity,
		updatedAt: time.Now(),
		events:    make([]shared.DomainEvent, 0),
	}, nil
}

// ReconstructProduct 從資料庫重建
func ReconstructProduct(id ProductID, name string, quantity int, updatedAt time.Time) *Product {
	return &Product{
		id:        id,
		name:      name,
		quantity:  quantity,
		updatedAt: updatedAt,
		events:    make([]shared.DomainEvent, 0),
	}
}

func (p *Product) ID() ProductID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Quantity() int { return p.quantity }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// Stock 轉為 ProductStock
func (p *Product) Stock() ProductStock {
	return ProductStock{ProductID: p.id, Name: p.name, Quantity: p.quantity}
}

// SetQuantity 設定庫存數量
//
// 數量有變化時發布 StockChanged 事件；相同數量不發布
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock.WithContext("product_id", p.id.String(), "quantity", quantity)
	}
	if quantity == p.quantity {
		return nil
	}

	previous := p.quantity
	p.quantity = quantity
	p.updatedAt = time.Now()
	p.events = append(p.events, NewStockChangedEvent(p.id, p.name, previous, quantity))
	return nil
}

// PullEvents 獲取所有待發布事件並清空列表
func (p *Product) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = make([]shared.DomainEvent, 0)
	return events
}
