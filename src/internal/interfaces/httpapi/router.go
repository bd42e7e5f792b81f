package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	inventoryapp "github.com/jackyeh168/jewel_rewards/src/internal/application/inventory"
	loyaltyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/loyalty"
	luckyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/lucky"
	spinapp "github.com/jackyeh168/jewel_rewards/src/internal/application/spinwheel"
)

// Services HTTP 層用到的所有 Use Case
type Services struct {
	CreateAccount   *loyaltyapp.CreateAccountUseCase
	EarnPoints      *loyaltyapp.EarnPointsUseCase
	QuoteRedemption *loyaltyapp.QuoteRedemptionUseCase
	RedeemPoints    *loyaltyapp.RedeemPointsUseCase
	ForfeitPoints   *loyaltyapp.ForfeitPointsUseCase
	GetSummary      *loyaltyapp.GetSummaryUseCase
	Reconcile       *loyaltyapp.ReconcileAccountUseCase

	CheckEligibility *luckyapp.CheckEligibilityUseCase
	ClaimDiscount    *luckyapp.ClaimDiscountUseCase
	SaveDiscount     *luckyapp.SaveDiscountUseCase

	ListPrizes       *spinapp.ListPrizesUseCase
	Spin             *spinapp.SpinUseCase
	ListCoupons      *spinapp.ListCouponsUseCase
	RedeemCoupon     *spinapp.RedeemCouponUseCase
	SavePrizes       *spinapp.SavePrizesUseCase
	GetSpinSettings  *spinapp.GetSettingsUseCase
	SaveSpinSettings *spinapp.SaveSettingsUseCase
	ExpireStaleSpins *spinapp.ExpireStaleSpinsUseCase
	ResetTodaySpins  *spinapp.ResetTodaySpinsUseCase

	GetInventorySettings  *inventoryapp.GetSettingsUseCase
	SaveInventorySettings *inventoryapp.SaveSettingsUseCase
	StockReport           *inventoryapp.StockReportUseCase
	UpdateStock           *inventoryapp.UpdateStockUseCase
}

// Options 路由設定
type Options struct {
	Auth           *Authenticator
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// Ping 健康檢查時確認資料庫可用；nil 表示不檢查
	Ping func(ctx context.Context) error
}

// Handler 持有 Use Case 與日誌
type Handler struct {
	svc    Services
	logger *slog.Logger
	ping   func(ctx context.Context) error
}

// NewRouter 組裝 chi 路由
func NewRouter(svc Services, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	h := &Handler{svc: svc, logger: opts.Logger, ping: opts.Ping}
	auth := opts.Auth

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Post("/loyalty/account", h.CreateAccount)
			r.Get("/loyalty/summary", h.LoyaltySummary)
			r.Post("/loyalty/purchases", h.RecordPurchase)
			r.Post("/loyalty/redemptions/quote", h.QuoteRedemption)
			r.Post("/loyalty/redemptions", h.RedeemPoints)

			r.Get("/lucky/eligibility", h.LuckyEligibility)
			r.Post("/lucky/claims", h.ClaimLuckyDiscount)
		})

		// 轉盤開放給訪客
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth)

			r.Get("/spin/prizes", h.SpinPrizes)
			r.Post("/spin", h.Spin)
			r.Get("/spin/coupons", h.SpinCoupons)
			r.Post("/spin/redeem", h.RedeemSpinCoupon)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Use(RequireAdmin)

			r.Put("/spin/prizes", h.SaveSpinPrizes)
			r.Get("/spin/settings", h.SpinSettings)
			r.Put("/spin/settings", h.SaveSpinSettings)
			r.Post("/spin/expire", h.ExpireStaleSpins)
			r.Post("/spin/reset", h.ResetTodaySpins)

			r.Put("/lucky/discounts", h.SaveLuckyDiscount)

			r.Get("/inventory/settings", h.InventorySettings)
			r.Put("/inventory/settings", h.SaveInventorySettings)
			r.Get("/inventory/report", h.StockReport)
			r.Put("/inventory/stock/{productID}", h.UpdateStock)

			r.Post("/loyalty/{userID}/forfeit", h.ForfeitPoints)
			r.Get("/loyalty/{userID}/reconcile", h.ReconcileAccount)
		})
	})

	return r
}

// Health 健康檢查
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, APIResponse{
				Code:    "UNHEALTHY",
				Message: "database is not reachable",
			})
			return
		}
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// principal 取得已驗證的請求者（路由保證 RequireAuth 已執行）
func principal(r *http.Request) Principal {
	p, _ := PrincipalFrom(r.Context())
	return p
}
