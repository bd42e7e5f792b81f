package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// StockAlertFunction 寄送庫存提醒的 edge function
const StockAlertFunction = "send-stock-alert"

// StockAlertHandler 訂閱 inventory.stock_changed，庫存等級惡化時寄送提醒
//
// 規則：
// - 只在等級改變時提醒（同等級內的數量變動不重複提醒）
// - 是否寄送依 Settings.ShouldAlert
// - 寄送失敗只記錄日誌
type StockAlertHandler struct {
	settings inventory.SettingsRepository
	invoker  shared.FunctionInvoker
	timeout  time.Duration
	logger   *slog.Logger
}

// NewStockAlertHandler 創建處理器
func NewStockAlertHandler(
	settings inventory.SettingsRepository,
	invoker shared.FunctionInvoker,
	timeout time.Duration,
	logger *slog.Logger,
) *StockAlertHandler {
	return &StockAlertHandler{settings: settings, invoker: invoker, timeout: timeout, logger: logger}
}

// EventType 實現 EventHandler 介面
func (h *StockAlertHandler) EventType() string {
	return inventory.EventTypeStockChanged
}

// stockAlert edge function payload
type stockAlert struct {
	To                     string `json:"to"`
	ProductID              string `json:"productId"`
	ProductName            string `json:"productName"`
	Quantity               int    `json:"quantity"`
	Level                  string `json:"level"`
	LowStockThreshold      int    `json:"lowStockThreshold"`
	CriticalStockThreshold int    `json:"criticalStockThreshold"`
}

// Handle 實現 EventHandler 介面
func (h *StockAlertHandler) Handle(event shared.DomainEvent) error {
	changed, ok := event.(*inventory.StockChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	settings, err := h.settings.Get(nil)
	if err != nil {
		h.logger.Warn("failed to load inventory settings for stock alert",
			slog.String("product_id", changed.ProductID.String()),
			slog.Any("error", err),
		)
		return nil
	}

	level := inventory.Classify(changed.Quantity, settings.Thresholds)
	previous := inventory.Classify(changed.PreviousQuantity, settings.Thresholds)
	if level == previous || !settings.ShouldAlert(level) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err = h.invoker.Invoke(ctx, StockAlertFunction, stockAlert{
		To:                     settings.AlertEmailAddress,
		ProductID:              changed.ProductID.String(),
		ProductName:            changed.ProductName,
		Quantity:               changed.Quantity,
		Level:                  string(level),
		LowStockThreshold:      settings.Thresholds.Low(),
		CriticalStockThreshold: settings.Thresholds.Critical(),
	})
	if err != nil {
		h.logger.Warn("failed to send stock alert",
			slog.String("product_id", changed.ProductID.String()),
			slog.String("level", string(level)),
			slog.Any("error", err),
		)
		return nil
	}

	h.logger.Info("stock alert sent",
		slog.String("product_id", changed.ProductID.String()),
		slog.String("level", string(level)),
	)
	return nil
}
