package spinwheel

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// 2024-11-01 17:30 IST
var testNow = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

var kolkata = time.FixedZone("IST", 5*3600+30*60)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===========================
// Mock PrizeRepository
// ===========================

type MockPrizeRepository struct {
	prizes              []spinwheel.Prize
	ReplaceAllCallCount int
}

func (m *MockPrizeRepository) ListAll(tx shared.TransactionContext) ([]spinwheel.Prize, error) {
	return append([]spinwheel.Prize(nil), m.prizes...), nil
}

func (m *MockPrizeRepository) ReplaceAll(tx shared.TransactionContext, prizes []spinwheel.Prize) error {
	m.ReplaceAllCallCount++
	m.prizes = append([]spinwheel.Prize(nil), prizes...)
	return nil
}

// ===========================
// Mock SettingsRepository
// ===========================

type MockSettingsRepository struct {
	settings      spinwheel.Settings
	SaveCallCount int
}

func (m *MockSettingsRepository) Get(tx shared.TransactionContext) (spinwheel.Settings, error) {
	return m.settings, nil
}

func (m *MockSettingsRepository) Save(tx shared.TransactionContext, settings spinwheel.Settings) error {
	m.SaveCallCount++
	m.settings = settings
	return nil
}

// ===========================
// Mock HistoryRepository（模擬 coupon_code 與當日名額唯一索引）
// ===========================

type MockHistoryRepository struct {
	entries []*spinwheel.HistoryEntry

	// ConflictTimes 前 N 次 Save 一律返回 ErrCouponConflict
	ConflictTimes int
	// Concurrent 第一次 Save 前由其他請求寫入的紀錄
	Concurrent []*spinwheel.HistoryEntry

	SaveCallCount   int
	RedeemCallCount int
	redeemed        map[string]bool
}

func (m *MockHistoryRepository) Save(tx shared.TransactionContext, entry *spinwheel.HistoryEntry) error {
	m.SaveCallCount++
	if len(m.Concurrent) > 0 {
		m.entries = append(m.entries, m.Concurrent...)
		m.Concurrent = nil
	}
	if m.ConflictTimes > 0 {
		m.ConflictTimes--
		return spinwheel.ErrCouponConflict
	}
	slot, hasSlot := entry.QuotaSlot()
	for _, e := range m.entries {
		if e.CouponCode() == entry.CouponCode() {
			return spinwheel.ErrCouponConflict
		}
		if other, ok := e.QuotaSlot(); ok && hasSlot && other == slot && e.Identity().String() == entry.Identity().String() {
			return spinwheel.ErrSlotTaken
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

// MarkRedeemed 以紀錄 ID 記住已兌換狀態，模擬資料庫的條件更新
func (m *MockHistoryRepository) MarkRedeemed(tx shared.TransactionContext, entry *spinwheel.HistoryEntry) error {
	m.RedeemCallCount++
	if m.redeemed == nil {
		m.redeemed = make(map[string]bool)
	}
	for _, e := range m.entries {
		if !e.ID().Equals(entry.ID()) {
			continue
		}
		if m.redeemed[e.ID().String()] {
			return spinwheel.ErrAlreadyRedeemed
		}
		m.redeemed[e.ID().String()] = true
		return nil
	}
	return spinwheel.ErrCouponNotFound
}

func (m *MockHistoryRepository) CountSince(tx shared.TransactionContext, identity spinwheel.Identity, since time.Time) (int, error) {
	count := 0
	for _, e := range m.entries {
		if e.Identity().String() == identity.String() && !e.CreatedAt().Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockHistoryRepository) FindByCouponCode(tx shared.TransactionContext, code string) (*spinwheel.HistoryEntry, error) {
	for _, e := range m.entries {
		if e.CouponCode() == code {
			return e, nil
		}
	}
	return nil, spinwheel.ErrCouponNotFound
}

func (m *MockHistoryRepository) ListByIdentity(tx shared.TransactionContext, identity spinwheel.Identity, limit int) ([]*spinwheel.HistoryEntry, error) {
	var result []*spinwheel.HistoryEntry
	for _, e := range m.entries {
		if e.Identity().String() == identity.String() {
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

func (m *MockHistoryRepository) ExpireUnredeemed(tx shared.TransactionContext, cutoff time.Time, now time.Time) (int64, error) {
	var affected int64
	for i, e := range m.entries {
		if !e.IsRedeemed() && e.CreatedAt().Before(cutoff) && e.ExpiresAt().After(now) {
			m.entries[i] = spinwheel.ReconstructHistoryEntry(
				e.ID(), e.Identity(), e.PrizeID(), e.PrizeLabel(), e.PrizeValue(),
				e.CouponCode(), e.IsRedeemed(), e.CreatedAt(), now,
			)
			affected++
		}
	}
	return affected, nil
}

func (m *MockHistoryRepository) DeleteSince(tx shared.TransactionContext, since time.Time) (int64, error) {
	kept := m.entries[:0]
	var deleted int64
	for _, e := range m.entries {
		if e.CreatedAt().Before(since) {
			kept = append(kept, e)
		} else {
			deleted++
		}
	}
	m.entries = kept
	return deleted, nil
}

// ===========================
// Mock TransactionManager / EventPublisher / Random
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

// fixedRandom 總是返回同一個值（需小於 n）
type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

// ===========================
// 測試夾具
// ===========================

type spinFixture struct {
	prizes    *MockPrizeRepository
	settings  *MockSettingsRepository
	history   *MockHistoryRepository
	txManager *MockTransactionManager
	publisher *MockEventPublisher
	useCase   *SpinUseCase
}

func newSpinFixture(settings spinwheel.Settings, prizes ...spinwheel.Prize) *spinFixture {
	f := &spinFixture{
		prizes:    &MockPrizeRepository{prizes: prizes},
		settings:  &MockSettingsRepository{settings: settings},
		history:   &MockHistoryRepository{},
		txManager: &MockTransactionManager{},
		publisher: &MockEventPublisher{},
	}
	f.useCase = NewSpinUseCase(SpinDependencies{
		Prizes:    f.prizes,
		Settings:  f.settings,
		History:   f.history,
		TxManager: f.txManager,
		Publisher: f.publisher,
		Random:    fixedRandom(0),
		Clock:     shared.FixedClock{At: testNow},
		Location:  kolkata,
		Logger:    discardLogger(),
	})
	return f
}

func prize(label string, weight, sortOrder int) spinwheel.Prize {
	return spinwheel.Prize{
		ID:        spinwheel.NewPrizeID(),
		Label:     label,
		Value:     label,
		Color:     "#FFD700",
		Weight:    weight,
		IsActive:  true,
		SortOrder: sortOrder,
	}
}

func intPtr(v int) *int { return &v }
