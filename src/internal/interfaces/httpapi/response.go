package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// 請求 body 上限
const maxBodyBytes = 1 << 20

// 非領域錯誤的對外訊息
const internalErrorMessage = "Something went wrong on our side. Please try again in a moment."

// APIResponse 統一回應格式
type APIResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

// ===========================
// 錯誤映射
// ===========================

// statusByCode 錯誤代碼 → HTTP 狀態碼
//
// 未列出的代碼依後綴判斷（_INVALID → 400，_NOT_FOUND → 404），其餘為 500
var statusByCode = map[shared.ErrorCode]int{
	shared.ErrCodeGatewayUnavailable: http.StatusServiceUnavailable,
	shared.ErrCodeNotFound:           http.StatusNotFound,
	shared.ErrCodeInvalidWeights:     http.StatusBadRequest,

	loyalty.ErrCodeNegativePointsAmount:   http.StatusBadRequest,
	loyalty.ErrCodeInsufficientPoints:     http.StatusUnprocessableEntity,
	loyalty.ErrCodeBelowMinimumRedemption: http.StatusUnprocessableEntity,
	loyalty.ErrCodeAccountAlreadyExists:   http.StatusConflict,
	loyalty.ErrCodeProgramDisabled:        http.StatusForbidden,
	loyalty.ErrCodeConcurrentUpdate:       http.StatusConflict,

	lucky.ErrCodeNotEligible:    http.StatusForbidden,
	lucky.ErrCodeAlreadyClaimed: http.StatusConflict,
	lucky.ErrCodeExpired:        http.StatusGone,

	spinwheel.ErrCodeQuotaExceeded:   http.StatusTooManyRequests,
	spinwheel.ErrCodeSpinDisabled:    http.StatusForbidden,
	spinwheel.ErrCodeCouponExpired:   http.StatusGone,
	spinwheel.ErrCodeAlreadyRedeemed: http.StatusConflict,
	spinwheel.ErrCodeCouponConflict:  http.StatusConflict,
	spinwheel.ErrCodeSlotTaken:       http.StatusConflict,

	inventory.ErrCodeInvalidThresholds: http.StatusBadRequest,
	inventory.ErrCodeNegativeStock:     http.StatusBadRequest,
}

// StatusFor 錯誤對應的 HTTP 狀態碼
func StatusFor(code shared.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	switch c := string(code); {
	case strings.HasSuffix(c, "_INVALID"):
		return http.StatusBadRequest
	case strings.HasSuffix(c, "_NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError 輸出錯誤回應
//
// DomainError 以其代碼與訊息回應；其他錯誤記錄後回應 500，不洩漏內部細節。
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error("unhandled request error",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, APIResponse{
			Code:    "INTERNAL",
			Message: internalErrorMessage,
		})
		return
	}

	status := StatusFor(domainErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	resp := APIResponse{Code: string(domainErr.Code), Message: domainErr.Message}
	// 重複領取時帶回既有的折扣碼
	if domainErr.Code == lucky.ErrCodeAlreadyClaimed && len(domainErr.Context) > 0 {
		resp.Data = domainErr.Context
	}
	writeJSON(w, status, resp)
}

// badRequest 請求格式錯誤
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{Code: "BAD_REQUEST", Message: message})
}

// decodeJSON 解析 JSON body；不接受未知欄位
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(w, "Request body is empty.")
			return false
		}
		badRequest(w, fmt.Sprintf("Request body is not valid JSON: %v", err))
		return false
	}
	return true
}
