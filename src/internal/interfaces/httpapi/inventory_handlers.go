package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	inventoryapp "github.com/jackyeh168/jewel_rewards/src/internal/application/inventory"
)

type inventorySettingsBody struct {
	LowStockThreshold      int    `json:"lowStockThreshold"`
	CriticalStockThreshold int    `json:"criticalStockThreshold"`
	LowStockAlerts         bool   `json:"lowStockAlerts"`
	OutOfStockAlerts       bool   `json:"outOfStockAlerts"`
	EmailAlerts            bool   `json:"emailAlerts"`
	AlertEmailAddress      string `json:"alertEmailAddress,omitempty"`
}

func toInventorySettingsBody(s *inventoryapp.SettingsDTO) inventorySettingsBody {
	return inventorySettingsBody{
		LowStockThreshold:      s.LowStockThreshold,
		CriticalStockThreshold: s.CriticalStockThreshold,
		LowStockAlerts:         s.LowStockAlerts,
		OutOfStockAlerts:       s.OutOfStockAlerts,
		EmailAlerts:            s.EmailAlerts,
		AlertEmailAddress:      s.AlertEmailAddress,
	}
}

// InventorySettings 讀取庫存警示設定
func (h *Handler) InventorySettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetInventorySettings.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toInventorySettingsBody(settings))
}

// SaveInventorySettings 儲存庫存警示設定（門檻在此驗證）
func (h *Handler) SaveInventorySettings(w http.ResponseWriter, r *http.Request) {
	var req inventorySettingsBody
	if !decodeJSON(w, r, &req) {
		return
	}
	saved, err := h.svc.SaveInventorySettings.Execute(r.Context(), inventoryapp.SettingsDTO{
		LowStockThreshold:      req.LowStockThreshold,
		CriticalStockThreshold: req.CriticalStockThreshold,
		LowStockAlerts:         req.LowStockAlerts,
		OutOfStockAlerts:       req.OutOfStockAlerts,
		EmailAlerts:            req.EmailAlerts,
		AlertEmailAddress:      req.AlertEmailAddress,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toInventorySettingsBody(saved))
}

type stockItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

func toStockItems(items []inventoryapp.StockItemDTO) []stockItemResponse {
	out := make([]stockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, stockItemResponse{ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity})
	}
	return out
}

type stockReportResponse struct {
	LowStockThreshold      int                 `json:"lowStockThreshold"`
	CriticalStockThreshold int                 `json:"criticalStockThreshold"`
	OutOfStock             []stockItemResponse `json:"outOfStock"`
	Critical               []stockItemResponse `json:"critical"`
	Low                    []stockItemResponse `json:"low"`
	Healthy                []stockItemResponse `json:"healthy"`
	Total                  int                 `json:"total"`
}

// StockReport 依庫存等級分組的商品
func (h *Handler) StockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.StockReport.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, stockReportResponse{
		LowStockThreshold:      report.LowStockThreshold,
		CriticalStockThreshold: report.CriticalStockThreshold,
		OutOfStock:             toStockItems(report.OutOfStock),
		Critical:               toStockItems(report.Critical),
		Low:                    toStockItems(report.Low),
		Healthy:                toStockItems(report.Healthy),
		Total:                  report.Total,
	})
}

type updateStockRequest struct {
	Name     string `json:"name,omitempty"`
	Quantity int    `json:"quantity"`
}

// UpdateStock 更新商品庫存
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateStock.Execute(r.Context(), inventoryapp.UpdateStockCommand{
		ProductID: chi.URLParam(r, "productID"),
		Name:      req.Name,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"productId": result.ProductID,
		"name":      result.Name,
		"quantity":  result.Quantity,
		"level":     result.Level,
	})
}
