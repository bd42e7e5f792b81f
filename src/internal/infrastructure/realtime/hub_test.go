package realtime

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// 測試輔助
// ===========================

type testEvent struct {
	id        string
	eventType string
}

func (e testEvent) EventID() string       { return e.id }
func (e testEvent) EventType() string     { return e.eventType }
func (e testEvent) OccurredAt() time.Time { return time.Time{} }
func (e testEvent) AggregateID() string   { return "aggregate" }

// recordingHandler 記錄收到的事件 ID
type recordingHandler struct {
	mu       sync.Mutex
	received []string
	gate     chan struct{} // 非 nil 時每次處理前等待
	err      error
	panics   bool
}

func (h *recordingHandler) EventType() string { return "test.event" }

func (h *recordingHandler) Handle(event shared.DomainEvent) error {
	if h.gate != nil {
		<-h.gate
	}
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.received = append(h.received, event.EventID())
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) ids() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.received...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===========================
// 測試
// ===========================

// Test 1: 事件依發布順序送到對應類型的訂閱者
func TestHub_DeliversInOrder(t *testing.T) {
	// Arrange
	hub := NewHub(8, quietLogger())
	handler := &recordingHandler{}
	other := &recordingHandler{}
	require.NoError(t, hub.Subscribe("test.event", handler))
	require.NoError(t, hub.Subscribe("other.event", other))

	// Act
	err := hub.PublishBatch([]shared.DomainEvent{
		testEvent{id: "1", eventType: "test.event"},
		testEvent{id: "2", eventType: "test.event"},
		testEvent{id: "3", eventType: "test.event"},
	})
	hub.Close()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, handler.ids())
	assert.Empty(t, other.ids())
}

// Test 2: 緩衝已滿時丟棄事件，發布端不阻塞
func TestHub_DropsWhenBufferFull(t *testing.T) {
	// Arrange
	hub := NewHub(1, quietLogger())
	handler := &recordingHandler{gate: make(chan struct{})}
	require.NoError(t, hub.Subscribe("test.event", handler))

	// Act: 第一個事件被 goroutine 取走並卡在 gate，第二個填滿緩衝，第三個被丟棄
	require.NoError(t, hub.Publish(testEvent{id: "1", eventType: "test.event"}))
	require.Eventually(t, func() bool { return len(hub.subs["test.event"][0].events) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, hub.Publish(testEvent{id: "2", eventType: "test.event"}))
	require.NoError(t, hub.Publish(testEvent{id: "3", eventType: "test.event"}))
	close(handler.gate)
	hub.Close()

	// Assert
	assert.Equal(t, []string{"1", "2"}, handler.ids())
}

// Test 3: handler 錯誤或 panic 不影響後續事件
func TestHub_HandlerFailuresAreContained(t *testing.T) {
	// Arrange
	hub := NewHub(4, quietLogger())
	failing := &recordingHandler{err: errors.New("smtp down")}
	panicking := &recordingHandler{panics: true}
	require.NoError(t, hub.Subscribe("test.event", failing))
	require.NoError(t, hub.Subscribe("test.event", panicking))

	// Act
	require.NoError(t, hub.Publish(testEvent{id: "1", eventType: "test.event"}))
	require.NoError(t, hub.Publish(testEvent{id: "2", eventType: "test.event"}))
	hub.Close()

	// Assert
	assert.Equal(t, []string{"1", "2"}, failing.ids())
}

// Test 4: 關閉後拒絕發布與訂閱，重複關閉安全
func TestHub_Closed(t *testing.T) {
	hub := NewHub(0, quietLogger())
	hub.Close()
	hub.Close()

	assert.ErrorIs(t, hub.Publish(testEvent{id: "1", eventType: "test.event"}), ErrHubClosed)
	assert.ErrorIs(t, hub.Subscribe("test.event", &recordingHandler{}), ErrHubClosed)
}
