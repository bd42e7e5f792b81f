package httpapi

import (
	"net/http"
	"strconv"
	"time"

	spinapp "github.com/jackyeh168/jewel_rewards/src/internal/application/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

type prizeResponse struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Value           string  `json:"value"`
	DiscountPercent *int    `json:"discountPercent,omitempty"`
	Color           string  `json:"color"`
	Weight          int     `json:"weight"`
	IsActive        bool    `json:"isActive"`
	SortOrder       int     `json:"sortOrder"`
	ChancePercent   float64 `json:"chancePercent"`
}

func toPrizeResponses(prizes []spinapp.PrizeDTO) []prizeResponse {
	out := make([]prizeResponse, 0, len(prizes))
	for _, p := range prizes {
		out = append(out, prizeResponse{
			ID:              p.ID,
			Label:           p.Label,
			Value:           p.Value,
			DiscountPercent: p.DiscountPercent,
			Color:           p.Color,
			Weight:          p.Weight,
			IsActive:        p.IsActive,
			SortOrder:       p.SortOrder,
			ChancePercent:   p.ChancePercent,
		})
	}
	return out
}

type couponResponse struct {
	EntryID    string    `json:"entryId"`
	PrizeID    string    `json:"prizeId"`
	PrizeLabel string    `json:"prizeLabel"`
	PrizeValue string    `json:"prizeValue"`
	CouponCode string    `json:"couponCode"`
	IsRedeemed bool      `json:"isRedeemed"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func toCouponResponse(c spinapp.CouponDTO) couponResponse {
	return couponResponse{
		EntryID:    c.EntryID,
		PrizeID:    c.PrizeID,
		PrizeLabel: c.PrizeLabel,
		PrizeValue: c.PrizeValue,
		CouponCode: c.CouponCode,
		IsRedeemed: c.IsRedeemed,
		CreatedAt:  c.CreatedAt,
		ExpiresAt:  c.ExpiresAt,
	}
}

// ===========================
// 客人 / 訪客
// ===========================

// SpinPrizes 轉盤獎項、中獎機率與今日剩餘次數
func (h *Handler) SpinPrizes(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := spinIdentity(r)
	result, err := h.svc.ListPrizes.Execute(r.Context(), spinapp.ListPrizesQuery{
		Page:      r.URL.Query().Get("page"),
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"visible":        result.Visible,
		"spinsPerDay":    result.SpinsPerDay,
		"spinsRemaining": result.SpinsRemaining,
		"prizes":         toPrizeResponses(result.Prizes),
	})
}

// Spin 轉一次
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := spinIdentity(r)
	result, err := h.svc.Spin.Execute(r.Context(), spinapp.SpinCommand{
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]interface{}{
		"prize":          toPrizeResponses([]spinapp.PrizeDTO{result.Prize})[0],
		"coupon":         toCouponResponse(result.Coupon),
		"spinsRemaining": result.SpinsRemaining,
	})
}

// SpinCoupons 抽獎者的優惠券
func (h *Handler) SpinCoupons(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := spinIdentity(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	coupons, err := h.svc.ListCoupons.Execute(r.Context(), spinapp.ListCouponsQuery{
		UserID:    userID,
		SessionID: sessionID,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]couponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, toCouponResponse(c))
	}
	writeData(w, http.StatusOK, out)
}

type redeemCouponRequest struct {
	CouponCode string `json:"couponCode"`
}

// RedeemSpinCoupon 結帳時兌換優惠券
func (h *Handler) RedeemSpinCoupon(w http.ResponseWriter, r *http.Request) {
	var req redeemCouponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coupon, err := h.svc.RedeemCoupon.Execute(r.Context(), spinapp.RedeemCouponCommand{CouponCode: req.CouponCode})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toCouponResponse(*coupon))
}

// ===========================
// 管理端
// ===========================

type prizeRequest struct {
	ID              string `json:"id,omitempty"`
	Label           string `json:"label"`
	Value           string `json:"value"`
	DiscountPercent *int   `json:"discountPercent,omitempty"`
	Color           string `json:"color"`
	Weight          int    `json:"weight"`
	IsActive        bool   `json:"isActive"`
	SortOrder       int    `json:"sortOrder"`
}

type savePrizesRequest struct {
	Prizes []prizeRequest `json:"prizes"`
}

// SaveSpinPrizes 整組儲存獎項
func (h *Handler) SaveSpinPrizes(w http.ResponseWriter, r *http.Request) {
	var req savePrizesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd := spinapp.SavePrizesCommand{Prizes: make([]spinapp.PrizeInput, 0, len(req.Prizes))}
	for _, p := range req.Prizes {
		cmd.Prizes = append(cmd.Prizes, spinapp.PrizeInput{
			ID:              p.ID,
			Label:           p.Label,
			Value:           p.Value,
			DiscountPercent: p.DiscountPercent,
			Color:           p.Color,
			Weight:          p.Weight,
			IsActive:        p.IsActive,
			SortOrder:       p.SortOrder,
		})
	}

	saved, err := h.svc.SavePrizes.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toPrizeResponses(saved))
}

type spinSettingsBody struct {
	SpinsPerDay  int      `json:"spinsPerDay"`
	ShowOnPages  []string `json:"showOnPages"`
	IsEnabled    bool     `json:"isEnabled"`
	ValidityDays int      `json:"validityDays"`
}

func toSpinSettingsBody(s spinwheel.Settings) spinSettingsBody {
	return spinSettingsBody{
		SpinsPerDay:  s.SpinsPerDay,
		ShowOnPages:  s.ShowOnPages,
		IsEnabled:    s.IsEnabled,
		ValidityDays: s.ValidityDays,
	}
}

// SpinSettings 讀取轉盤設定
func (h *Handler) SpinSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSpinSettings.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toSpinSettingsBody(settings))
}

// SaveSpinSettings 儲存轉盤設定
func (h *Handler) SaveSpinSettings(w http.ResponseWriter, r *http.Request) {
	var req spinSettingsBody
	if !decodeJSON(w, r, &req) {
		return
	}
	settings := spinwheel.Settings{
		SpinsPerDay:  req.SpinsPerDay,
		ShowOnPages:  req.ShowOnPages,
		IsEnabled:    req.IsEnabled,
		ValidityDays: req.ValidityDays,
	}
	if err := h.svc.SaveSpinSettings.Execute(r.Context(), settings); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.SpinSettings(w, r)
}

// ExpireStaleSpins 批次作廢逾期未兌換的優惠券
func (h *Handler) ExpireStaleSpins(w http.ResponseWriter, r *http.Request) {
	affected, err := h.svc.ExpireStaleSpins.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"expired": affected})
}

// ResetTodaySpins 清除今日所有抽獎紀錄
func (h *Handler) ResetTodaySpins(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.ResetTodaySpins.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
