package loyalty

import (
	"context"
	"sort"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// Mock AccountRepository
// ===========================

type MockAccountRepository struct {
	accounts        map[string]*loyalty.LoyaltyAccount
	SaveCallCount   int
	UpdateCallCount int
	LockCallCount   int
	FindErr         error
	UpdateErr       error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*loyalty.LoyaltyAccount)}
}

func (m *MockAccountRepository) Save(tx shared.TransactionContext, account *loyalty.LoyaltyAccount) error {
	m.SaveCallCount++
	if _, exists := m.accounts[account.UserID().String()]; exists {
		return loyalty.ErrAccountAlreadyExists
	}
	m.accounts[account.UserID().String()] = account
	return nil
}

func (m *MockAccountRepository) FindByUserID(tx shared.TransactionContext, userID loyalty.UserID) (*loyalty.LoyaltyAccount, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if account, exists := m.accounts[userID.String()]; exists {
		return account, nil
	}
	return nil, loyalty.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByUserIDForUpdate(tx shared.TransactionContext, userID loyalty.UserID) (*loyalty.LoyaltyAccount, error) {
	m.LockCallCount++
	return m.FindByUserID(tx, userID)
}

func (m *MockAccountRepository) Update(tx shared.TransactionContext, account *loyalty.LoyaltyAccount) error {
	m.UpdateCallCount++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, exists := m.accounts[account.UserID().String()]; !exists {
		return loyalty.ErrAccountNotFound
	}
	m.accounts[account.UserID().String()] = account
	return nil
}

// ===========================
// Mock TransactionRepository
// ===========================

type MockTransactionRepository struct {
	entries         []*loyalty.LoyaltyTransaction
	AppendCallCount int
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Append(tx shared.TransactionContext, entry *loyalty.LoyaltyTransaction) error {
	m.AppendCallCount++
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockTransactionRepository) ListByUserID(tx shared.TransactionContext, userID loyalty.UserID, limit int) ([]*loyalty.LoyaltyTransaction, error) {
	var result []*loyalty.LoyaltyTransaction
	for _, e := range m.entries {
		if e.UserID().Equals(userID) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ===========================
// Mock SettingsRepository
// ===========================

type MockSettingsRepository struct {
	settings loyalty.Settings
}

func NewMockSettingsRepository(settings loyalty.Settings) *MockSettingsRepository {
	return &MockSettingsRepository{settings: settings}
}

func (m *MockSettingsRepository) Get(tx shared.TransactionContext) (loyalty.Settings, error) {
	return m.settings, nil
}

func (m *MockSettingsRepository) Save(tx shared.TransactionContext, settings loyalty.Settings) error {
	m.settings = settings
	return nil
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	if m.ShouldFail {
		return m.FailError
	}
	return fn(nil)
}

// ===========================
// Mock EventPublisher
// ===========================

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

func (m *MockEventPublisher) Types() []string {
	types := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.EventType())
	}
	return types
}

// ===========================
// 測試夾具
// ===========================

type fixture struct {
	accounts  *MockAccountRepository
	ledger    *MockTransactionRepository
	settings  *MockSettingsRepository
	txManager *MockTransactionManager
	publisher *MockEventPublisher
}

func newFixture() *fixture {
	return &fixture{
		accounts:  NewMockAccountRepository(),
		ledger:    NewMockTransactionRepository(),
		settings:  NewMockSettingsRepository(loyalty.DefaultSettings()),
		txManager: NewMockTransactionManager(),
		publisher: &MockEventPublisher{},
	}
}

// seedAccount 預先建立一個擁有指定積分的帳戶（含對應流水）
func (f *fixture) seedAccount(total, redeemed int) loyalty.UserID {
	userID := loyalty.NewUserID()
	account, _ := loyalty.NewLoyaltyAccount(userID)
	if total > 0 {
		amount, _ := loyalty.NewPointsAmount(total)
		entry, _ := account.Earn(amount, loyalty.TransactionTypePurchase, "seed")
		f.ledger.entries = append(f.ledger.entries, entry)
	}
	if redeemed > 0 {
		amount, _ := loyalty.NewPointsAmount(redeemed)
		entry, _ := account.Redeem(amount, "seed")
		f.ledger.entries = append(f.ledger.entries, entry)
	}
	account.PullEvents()
	f.accounts.accounts[userID.String()] = account
	return userID
}
