package inventory

import (
	"context"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// StockItemDTO 報表中的單一商品
type StockItemDTO struct {
	ProductID string
	Name      string
	Quantity  int
}

// StockReport 庫存報表（依庫存等級分組）
type StockReport struct {
	LowStockThreshold      int
	CriticalStockThreshold int
	OutOfStock             []StockItemDTO
	Critical               []StockItemDTO
	Low                    []StockItemDTO
	Healthy                []StockItemDTO
	Total                  int
}

// StockReportUseCase 管理端庫存報表
//
// 設定與商品在同一事務中讀取
type StockReportUseCase struct {
	products  inventory.ProductRepository
	settings  inventory.SettingsRepository
	txManager shared.TransactionManager
}

// NewStockReportUseCase 創建 Use Case 實例
func NewStockReportUseCase(
	products inventory.ProductRepository,
	settings inventory.SettingsRepository,
	txManager shared.TransactionManager,
) *StockReportUseCase {
	return &StockReportUseCase{products: products, settings: settings, txManager: txManager}
}

// Execute 執行查詢
func (uc *StockReportUseCase) Execute(ctx context.Context) (*StockReport, error) {
	var (
		settings inventory.Settings
		products []inventory.ProductStock
	)
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		settings, err = uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load inventory settings: %w", err)
		}
		products, err = uc.products.ListAll(tx)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	buckets := inventory.Partition(products, settings.Thresholds)
	return &StockReport{
		LowStockThreshold:      settings.Thresholds.Low(),
		CriticalStockThreshold: settings.Thresholds.Critical(),
		OutOfStock:             toStockItems(buckets.OutOfStock),
		Critical:               toStockItems(buckets.Critical),
		Low:                    toStockItems(buckets.Low),
		Healthy:                toStockItems(buckets.Healthy),
		Total:                  buckets.Total(),
	}, nil
}

func toStockItems(stocks []inventory.ProductStock) []StockItemDTO {
	items := make([]StockItemDTO, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, StockItemDTO{ProductID: s.ProductID.String(), Name: s.Name, Quantity: s.Quantity})
	}
	return items
}
