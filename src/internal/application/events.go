package application

import (
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// PublishEvents 在事務提交後發布領域事件
//
// 事件只驅動通知等附帶作業，發布失敗只記錄日誌，不影響主要操作的結果。
// publisher 為 nil 時不做任何事。
func PublishEvents(publisher shared.EventPublisher, logger *slog.Logger, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil && logger != nil {
		logger.Warn("failed to publish domain events",
			slog.Int("count", len(events)),
			slog.String("first_type", events[0].EventType()),
			slog.Any("error", err),
		)
	}
}
