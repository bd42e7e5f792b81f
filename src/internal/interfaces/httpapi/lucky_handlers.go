package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	luckyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/lucky"
)

type discountResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	RuleKind        string    `json:"ruleKind"`
	RuleDescription string    `json:"ruleDescription"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

func toDiscountResponse(d *luckyapp.DiscountDTO) *discountResponse {
	if d == nil {
		return nil
	}
	return &discountResponse{
		ID:              d.ID,
		Name:            d.Name,
		Code:            d.Code,
		DiscountPercent: d.DiscountPercent,
		RuleKind:        d.RuleKind,
		RuleDescription: d.RuleDescription,
		ExpiresAt:       d.ExpiresAt,
	}
}

type claimResponse struct {
	ClaimID      string    `json:"claimId"`
	DiscountID   string    `json:"discountId"`
	LuckyNumber  int       `json:"luckyNumber"`
	DiscountCode string    `json:"discountCode"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toClaimResponse(c *luckyapp.ClaimDTO) *claimResponse {
	if c == nil {
		return nil
	}
	return &claimResponse{
		ClaimID:      c.ClaimID,
		DiscountID:   c.DiscountID,
		LuckyNumber:  c.LuckyNumber,
		DiscountCode: c.DiscountCode,
		ExpiresAt:    c.ExpiresAt,
		CreatedAt:    c.CreatedAt,
	}
}

type eligibilityResponse struct {
	IsEligible  bool              `json:"isEligible"`
	LuckyNumber int               `json:"luckyNumber"`
	Message     string            `json:"message"`
	Discount    *discountResponse `json:"discount,omitempty"`
	Claim       *claimResponse    `json:"claim,omitempty"`
}

// LuckyEligibility 此次登入的幸運號碼與可領取的折扣
func (h *Handler) LuckyEligibility(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	result, err := h.svc.CheckEligibility.Execute(r.Context(), luckyapp.CheckEligibilityQuery{
		UserID:           p.UserID,
		SessionStartedAt: p.SessionStartedAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, eligibilityResponse{
		IsEligible:  result.IsEligible,
		LuckyNumber: result.LuckyNumber,
		Message:     result.Message,
		Discount:    toDiscountResponse(result.Discount),
		Claim:       toClaimResponse(result.Claim),
	})
}

type claimRequest struct {
	DiscountID  string `json:"discountId"`
	LuckyNumber int    `json:"luckyNumber"`
}

// ClaimLuckyDiscount 領取幸運折扣
func (h *Handler) ClaimLuckyDiscount(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := principal(r)
	claim, err := h.svc.ClaimDiscount.Execute(r.Context(), luckyapp.ClaimDiscountCommand{
		UserID:           p.UserID,
		Email:            p.Email,
		SessionStartedAt: p.SessionStartedAt,
		DiscountID:       req.DiscountID,
		LuckyNumber:      req.LuckyNumber,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toClaimResponse(claim))
}

type discountRequest struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	DiscountPercent int             `json:"discountPercent"`
	RuleKind        string          `json:"ruleKind"`
	RuleParams      json.RawMessage `json:"ruleParams"`
	StartsAt        time.Time       `json:"startsAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	IsActive        bool            `json:"isActive"`
}

// SaveLuckyDiscount 新增或更新幸運折扣（管理端）
func (h *Handler) SaveLuckyDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saved, err := h.svc.SaveDiscount.Execute(r.Context(), luckyapp.SaveDiscountCommand{
		ID:              req.ID,
		Name:            req.Name,
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		RuleKind:        req.RuleKind,
		RuleParams:      req.RuleParams,
		StartsAt:        req.StartsAt,
		ExpiresAt:       req.ExpiresAt,
		IsActive:        req.IsActive,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toDiscountResponse(saved))
}
