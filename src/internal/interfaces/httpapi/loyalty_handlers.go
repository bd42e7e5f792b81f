package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	loyaltyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/loyalty"
)

// ===========================
// 回應格式
// ===========================

type balanceResponse struct {
	TotalPoints     int     `json:"totalPoints"`
	RedeemedPoints  int     `json:"redeemedPoints"`
	AvailablePoints int     `json:"availablePoints"`
	Tier            string  `json:"tier"`
	NextTier        string  `json:"nextTier,omitempty"`
	PointsToNext    int     `json:"pointsToNext"`
	ProgressPercent float64 `json:"progressPercent"`
}

func toBalanceResponse(b loyaltyapp.BalanceDTO) balanceResponse {
	return balanceResponse{
		TotalPoints:     b.TotalPoints,
		RedeemedPoints:  b.RedeemedPoints,
		AvailablePoints: b.AvailablePoints,
		Tier:            b.Tier,
		NextTier:        b.NextTier,
		PointsToNext:    b.PointsToNext,
		ProgressPercent: b.ProgressPercent,
	}
}

type transactionResponse struct {
	ID          string    `json:"id"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

type summaryResponse struct {
	UserID     string                `json:"userId"`
	HasAccount bool                  `json:"hasAccount"`
	Balance    balanceResponse       `json:"balance"`
	Recent     []transactionResponse `json:"recent"`
}

// ===========================
// 客人
// ===========================

// CreateAccount 建立積分帳戶並發放註冊獎勵
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CreateAccount.Execute(r.Context(), loyaltyapp.CreateAccountCommand{
		UserID: principal(r).UserID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]interface{}{
		"accountId":  result.AccountID,
		"bonusGiven": result.BonusGiven,
		"balance":    toBalanceResponse(result.Balance),
	})
}

// LoyaltySummary 積分、等級進度與最近流水
func (h *Handler) LoyaltySummary(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := h.svc.GetSummary.Execute(r.Context(), loyaltyapp.GetSummaryQuery{
		UserID:      principal(r).UserID,
		RecentLimit: limit,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recent := make([]transactionResponse, 0, len(result.Recent))
	for _, t := range result.Recent {
		recent = append(recent, transactionResponse{
			ID:          t.ID,
			Points:      t.Points,
			Description: t.Description,
			Type:        t.Type,
			CreatedAt:   t.CreatedAt,
		})
	}
	writeData(w, http.StatusOK, summaryResponse{
		UserID:     result.UserID,
		HasAccount: result.HasAccount,
		Balance:    toBalanceResponse(result.Balance),
		Recent:     recent,
	})
}

type purchaseRequest struct {
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecordPurchase 訂單完成後累積積分
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OrderNumber == "" {
		badRequest(w, "orderNumber is required.")
		return
	}

	result, err := h.svc.EarnPoints.Execute(r.Context(), loyaltyapp.EarnPointsCommand{
		UserID:      principal(r).UserID,
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"pointsEarned":   result.PointsEarned,
		"accountCreated": result.AccountCreated,
		"tierUpgraded":   result.TierUpgraded,
		"balance":        toBalanceResponse(result.Balance),
	})
}

type redemptionRequest struct {
	OrderNumber string          `json:"orderNumber,omitempty"`
	Points      int             `json:"points"`
	OrderTotal  decimal.Decimal `json:"orderTotal"`
}

// QuoteRedemption 試算結帳可折抵的積分與金額
func (h *Handler) QuoteRedemption(w http.ResponseWriter, r *http.Request) {
	var req redemptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.QuoteRedemption.Execute(r.Context(), loyaltyapp.QuoteRedemptionQuery{
		UserID:     principal(r).UserID,
		Points:     req.Points,
		OrderTotal: req.OrderTotal,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"pointsUsed":      result.PointsUsed,
		"discount":        result.Discount,
		"availablePoints": result.AvailablePoints,
	})
}

// RedeemPoints 結帳折抵積分
func (h *Handler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	var req redemptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OrderNumber == "" {
		badRequest(w, "orderNumber is required.")
		return
	}

	result, err := h.svc.RedeemPoints.Execute(r.Context(), loyaltyapp.RedeemPointsCommand{
		UserID:      principal(r).UserID,
		OrderNumber: req.OrderNumber,
		Points:      req.Points,
		OrderTotal:  req.OrderTotal,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"pointsRedeemed": result.PointsRedeemed,
		"discount":       result.Discount,
		"balance":        toBalanceResponse(result.Balance),
	})
}

// ===========================
// 管理端
// ===========================

type forfeitRequest struct {
	Reason string `json:"reason"`
}

// ForfeitPoints 將客人的可用積分歸零
func (h *Handler) ForfeitPoints(w http.ResponseWriter, r *http.Request) {
	var req forfeitRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ForfeitPoints.Execute(r.Context(), loyaltyapp.ForfeitPointsCommand{
		UserID: chi.URLParam(r, "userID"),
		Reason: req.Reason,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"pointsForfeited": result.PointsForfeited,
		"balance":         toBalanceResponse(result.Balance),
	})
}

// ReconcileAccount 比對流水總和與可用積分
func (h *Handler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Reconcile.Execute(r.Context(), loyaltyapp.ReconcileAccountQuery{
		UserID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"userId":          result.UserID,
		"ledgerSum":       result.LedgerSum,
		"availablePoints": result.AvailablePoints,
		"entryCount":      result.EntryCount,
		"balanced":        result.Balanced,
	})
}
