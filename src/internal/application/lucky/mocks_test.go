package lucky

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

var testNow = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===========================
// Mock DiscountRepository
// ===========================

type MockDiscountRepository struct {
	discounts     map[string]lucky.Discount
	SaveCallCount int
}

func NewMockDiscountRepository(discounts ...lucky.Discount) *MockDiscountRepository {
	m := &MockDiscountRepository{discounts: make(map[string]lucky.Discount)}
	for _, d := range discounts {
		m.discounts[d.ID.String()] = d
	}
	return m
}

func (m *MockDiscountRepository) FindRunning(tx shared.TransactionContext, now time.Time) ([]lucky.Discount, error) {
	var running []lucky.Discount
	for _, d := range m.discounts {
		if d.IsRunning(now) {
			running = append(running, d)
		}
	}
	return running, nil
}

func (m *MockDiscountRepository) FindByID(tx shared.TransactionContext, id lucky.DiscountID) (lucky.Discount, error) {
	d, ok := m.discounts[id.String()]
	if !ok {
		return lucky.Discount{}, lucky.ErrDiscountNotFound
	}
	return d, nil
}

func (m *MockDiscountRepository) Save(tx shared.TransactionContext, discount lucky.Discount) error {
	m.SaveCallCount++
	m.discounts[discount.ID.String()] = discount
	return nil
}

// ===========================
// Mock ClaimRepository（模擬 (discount_id, user_id) 唯一索引）
// ===========================

type MockClaimRepository struct {
	claims        map[string]*lucky.Claim
	SaveCallCount int
}

func NewMockClaimRepository() *MockClaimRepository {
	return &MockClaimRepository{claims: make(map[string]*lucky.Claim)}
}

func claimKey(discountID lucky.DiscountID, userID lucky.UserID) string {
	return discountID.String() + "/" + userID.String()
}

func (m *MockClaimRepository) Save(tx shared.TransactionContext, claim *lucky.Claim) error {
	m.SaveCallCount++
	key := claimKey(claim.DiscountID(), claim.UserID())
	if _, exists := m.claims[key]; exists {
		return lucky.ErrAlreadyClaimed
	}
	m.claims[key] = claim
	return nil
}

func (m *MockClaimRepository) FindByDiscountAndUser(tx shared.TransactionContext, discountID lucky.DiscountID, userID lucky.UserID) (*lucky.Claim, error) {
	claim, ok := m.claims[claimKey(discountID, userID)]
	if !ok {
		return nil, lucky.ErrClaimNotFound
	}
	return claim, nil
}

func (m *MockClaimRepository) ListByUser(tx shared.TransactionContext, userID lucky.UserID) ([]*lucky.Claim, error) {
	var result []*lucky.Claim
	for _, c := range m.claims {
		if c.UserID().Equals(userID) {
			result = append(result, c)
		}
	}
	return result, nil
}

// ===========================
// Mock TransactionManager / EventPublisher / FunctionInvoker
// ===========================

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

// ===========================
// 測試夾具
// ===========================

// everyoneWins 任何號碼都中獎的活動
func everyoneWins(percent int) lucky.Discount {
	return lucky.Discount{
		ID:              lucky.NewDiscountID(),
		Name:            "Dhanteras Lucky Draw",
		Code:            "DHAN15",
		DiscountPercent: percent,
		Rule:            lucky.Range{Min: 1, Max: 100},
		StartsAt:        testNow.Add(-48 * time.Hour),
		ExpiresAt:       testNow.Add(72 * time.Hour),
		IsActive:        true,
	}
}
