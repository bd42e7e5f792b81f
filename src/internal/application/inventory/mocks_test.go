package inventory

import (
	"context"
	"io"
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSettingsRepository struct {
	settings      inventory.Settings
	SaveCallCount int
}

func (m *MockSettingsRepository) Get(tx shared.TransactionContext) (inventory.Settings, error) {
	return m.settings, nil
}

func (m *MockSettingsRepository) Save(tx shared.TransactionContext, settings inventory.Settings) error {
	m.SaveCallCount++
	m.settings = settings
	return nil
}

type MockProductRepository struct {
	products      []*inventory.Product
	SaveCallCount int
}

func (m *MockProductRepository) FindByID(tx shared.TransactionContext, id inventory.ProductID) (*inventory.Product, error) {
	for _, p := range m.products {
		if p.ID().Equals(id) {
			return inventory.ReconstructProduct(p.ID(), p.Name(), p.Quantity(), p.UpdatedAt()), nil
		}
	}
	return nil, inventory.ErrProductNotFound
}

func (m *MockProductRepository) ListAll(tx shared.TransactionContext) ([]inventory.ProductStock, error) {
	stocks := make([]inventory.ProductStock, 0, len(m.products))
	for _, p := range m.products {
		stocks = append(stocks, p.Stock())
	}
	return stocks, nil
}

func (m *MockProductRepository) Save(tx shared.TransactionContext, product *inventory.Product) error {
	m.SaveCallCount++
	for i, p := range m.products {
		if p.ID().Equals(product.ID()) {
			m.products[i] = product
			return nil
		}
	}
	m.products = append(m.products, product)
	return nil
}

func (m *MockProductRepository) add(name string, quantity int) inventory.ProductID {
	id := inventory.NewProductID()
	m.products = append(m.products, inventory.ReconstructProduct(id, name, quantity, testNow))
	return id
}

type MockTransactionManager struct {
	InTransactionCallCount int
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	return fn(nil)
}

type MockEventPublisher struct {
	Published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(event shared.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	m.Published = append(m.Published, events...)
	return nil
}

type invocation struct {
	Name    string
	Payload interface{}
}

type MockFunctionInvoker struct {
	Calls []invocation
	Err   error
}

func (m *MockFunctionInvoker) Invoke(ctx context.Context, name string, payload interface{}) error {
	m.Calls = append(m.Calls, invocation{Name: name, Payload: payload})
	return m.Err
}

// alertingSettings 全部提醒開啟、已設定收件人
func alertingSettings() inventory.Settings {
	s := inventory.DefaultSettings()
	s.AlertEmailAddress = "owner@jewels.example"
	return s
}
