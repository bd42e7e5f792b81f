package lucky

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// LuckyDiscountEmailFunction 寄送幸運折扣通知信的 edge function
const LuckyDiscountEmailFunction = "send-lucky-discount-email"

// ClaimEmailHandler 訂閱 lucky.discount_claimed，寄送折扣碼通知信
//
// 通知屬於附帶作業：失敗只記錄 warn 日誌，不回報為錯誤。
type ClaimEmailHandler struct {
	invoker shared.FunctionInvoker
	timeout time.Duration
	logger  *slog.Logger
}

// NewClaimEmailHandler 創建處理器
func NewClaimEmailHandler(invoker shared.FunctionInvoker, timeout time.Duration, logger *slog.Logger) *ClaimEmailHandler {
	return &ClaimEmailHandler{invoker: invoker, timeout: timeout, logger: logger}
}

// EventType 實現 EventHandler 介面
func (h *ClaimEmailHandler) EventType() string {
	return lucky.EventTypeDiscountClaimed
}

// luckyDiscountEmail 通知信內容（edge function 的 JSON payload）
type luckyDiscountEmail struct {
	To              string    `json:"to"`
	DiscountName    string    `json:"discountName"`
	DiscountCode    string    `json:"discountCode"`
	DiscountPercent int       `json:"discountPercent"`
	LuckyNumber     int       `json:"luckyNumber"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Handle 實現 EventHandler 介面
func (h *ClaimEmailHandler) Handle(event shared.DomainEvent) error {
	claimed, ok := event.(*lucky.DiscountClaimedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if claimed.Email == "" {
		h.logger.Debug("lucky discount claimed without email, skipping notification",
			slog.String("claim_id", claimed.ClaimID))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err := h.invoker.Invoke(ctx, LuckyDiscountEmailFunction, luckyDiscountEmail{
		To:              claimed.Email,
		DiscountName:    claimed.DiscountName,
		DiscountCode:    claimed.DiscountCode,
		DiscountPercent: claimed.DiscountPercent,
		LuckyNumber:     claimed.LuckyNumber,
		ExpiresAt:       claimed.ExpiresAt,
	})
	if err != nil {
		h.logger.Warn("failed to send lucky discount email",
			slog.String("claim_id", claimed.ClaimID),
			slog.String("user_id", claimed.UserID),
			slog.Any("error", err),
		)
		return nil
	}

	h.logger.Info("lucky discount email sent", slog.String("claim_id", claimed.ClaimID))
	return nil
}
