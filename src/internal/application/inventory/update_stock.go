package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// UpdateStockCommand 更新庫存數量
type UpdateStockCommand struct {
	ProductID string
	Name      string // 商品不存在時建立用
	Quantity  int
}

// UpdateStockResult 更新後的庫存與等級
type UpdateStockResult struct {
	ProductID string
	Name      string
	Quantity  int
	Level     inventory.StockLevel
}

// UpdateStockUseCase 管理端更新商品庫存
//
// 數量有變化時發布 inventory.stock_changed，由 StockAlertHandler 決定是否提醒
type UpdateStockUseCase struct {
	products  inventory.ProductRepository
	settings  inventory.SettingsRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewUpdateStockUseCase 創建 Use Case 實例
func NewUpdateStockUseCase(
	products inventory.ProductRepository,
	settings inventory.SettingsRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *UpdateStockUseCase {
	return &UpdateStockUseCase{
		products:  products,
		settings:  settings,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute 執行更新
func (uc *UpdateStockUseCase) Execute(ctx context.Context, cmd UpdateStockCommand) (*UpdateStockResult, error) {
	productID, err := inventory.ProductIDFromString(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	var (
		product  *inventory.Product
		settings inventory.Settings
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		settings, err = uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load inventory settings: %w", err)
		}

		product, err = uc.products.FindByID(tx, productID)
		switch {
		case err == nil:
			if err := product.SetQuantity(cmd.Quantity); err != nil {
				return err
			}
		case errors.Is(err, inventory.ErrProductNotFound):
			product, err = inventory.NewProduct(productID, cmd.Name, cmd.Quantity)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("failed to find product: %w", err)
		}

		if err := uc.products.Save(tx, product); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, product.PullEvents())

	return &UpdateStockResult{
		ProductID: product.ID().String(),
		Name:      product.Name(),
		Quantity:  product.Quantity(),
		Level:     inventory.Classify(product.Quantity(), settings.Thresholds),
	}, nil
}
