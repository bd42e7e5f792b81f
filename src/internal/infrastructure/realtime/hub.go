package realtime

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// 預設每個訂閱的緩衝大小
const DefaultBuffer = 64

// ErrHubClosed Hub 已關閉
var ErrHubClosed = errors.New("realtime hub is closed")

// ===========================
// Hub
// ===========================

// Hub 程序內的事件匯流排，實作 shared.EventPublisher 與 shared.EventSubscriber
//
// 每個訂閱擁有自己的緩衝 channel 與 goroutine，handler 依發布順序逐一執行。
// 緩衝已滿時丟棄事件並記錄 warn，發布端永遠不會被慢的 handler 阻塞。
type Hub struct {
	mu     sync.RWMutex
	subs   map[string][]*subscription
	buffer int
	closed bool
	wg     sync.WaitGroup
	logger *slog.Logger
}

type subscription struct {
	handler shared.EventHandler
	events  chan shared.DomainEvent
}

var (
	_ shared.EventPublisher  = (*Hub)(nil)
	_ shared.EventSubscriber = (*Hub)(nil)
)

// NewHub 創建 Hub；buffer <= 0 時使用 DefaultBuffer
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string][]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe 註冊 handler 接收 eventType 的事件
func (h *Hub) Subscribe(eventType string, handler shared.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("subscribe %s: handler is nil", eventType)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}

	sub := &subscription{
		handler: handler,
		events:  make(chan shared.DomainEvent, h.buffer),
	}
	h.subs[eventType] = append(h.subs[eventType], sub)

	h.wg.Add(1)
	go h.run(sub)
	return nil
}

// Publish 發布單一事件
func (h *Hub) Publish(event shared.DomainEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrHubClosed
	}

	for _, sub := range h.subs[event.EventType()] {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("subscriber buffer full, dropping event",
				slog.String("event_type", event.EventType()),
				slog.String("event_id", event.EventID()),
				slog.String("handler", fmt.Sprintf("%T", sub.handler)),
			)
		}
	}
	return nil
}

// PublishBatch 依序發布多個事件
func (h *Hub) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := h.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

// Close 停止接收事件，等待所有 handler 處理完緩衝中的事件
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for _, sub := range subs {
			close(sub.events)
		}
	}
	h.mu.Unlock()

	h.wg.Wait()
}

func (h *Hub) run(sub *subscription) {
	defer h.wg.Done()
	for event := range sub.events {
		h.dispatch(sub.handler, event)
	}
}

// dispatch 執行 handler；錯誤與 panic 只記錄日誌
func (h *Hub) dispatch(handler shared.EventHandler, event shared.DomainEvent) {
	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("event handler panicked",
				slog.String("event_type", event.EventType()),
				slog.String("event_id", event.EventID()),
				slog.Any("panic", p),
			)
		}
	}()

	if err := handler.Handle(event); err != nil {
		h.logger.Warn("event handler failed",
			slog.String("event_type", event.EventType()),
			slog.String("event_id", event.EventID()),
			slog.Any("error", err),
		)
	}
}
