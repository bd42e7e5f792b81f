package inventory

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
)

// ProductStockGORM 商品庫存（products 表的庫存欄位）
type ProductStockGORM struct {
	ID            string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name          string    `gorm:"column:name;type:varchar(200);not null"`
	StockQuantity int       `gorm:"column:stock_quantity;not null;default:0"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (ProductStockGORM) TableName() string {
	return "products"
}

const settingsRowID = 1

// SettingsGORM 庫存設定（單列）
type SettingsGORM struct {
	ID                     uint      `gorm:"column:id;primaryKey;autoIncrement:false"`
	LowStockThreshold      int       `gorm:"column:low_stock_threshold;not null"`
	CriticalStockThreshold int       `gorm:"column:critical_stock_threshold;not null"`
	LowStockAlerts         bool      `gorm:"column:low_stock_alerts;not null"`
	OutOfStockAlerts       bool      `gorm:"column:out_of_stock_alerts;not null"`
	EmailAlerts            bool      `gorm:"column:email_alerts;not null"`
	AlertEmailAddress      string    `gorm:"column:alert_email_address;type:varchar(255)"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (SettingsGORM) TableName() string {
	return "inventory_settings"
}

// Models 本模組所有資料表
func Models() []interface{} {
	return []interface{}{&ProductStockGORM{}, &SettingsGORM{}}
}

func (g *ProductStockGORM) toDomain() (*inventory.Product, error) {
	id, err := inventory.ProductIDFromString(g.ID)
	if err != nil {
		return nil, err
	}
	return inventory.ReconstructProduct(id, g.Name, g.StockQuantity, g.UpdatedAt), nil
}

func toProductGORM(p *inventory.Product) *ProductStockGORM {
	return &ProductStockGORM{
		ID:            p.ID().String(),
		Name:          p.Name(),
		StockQuantity: p.Quantity(),
		UpdatedAt:     p.UpdatedAt().UTC(),
	}
}

// toDomain 門檻已在儲存時驗證；資料庫中的不合法門檻退回預設值
func (g *SettingsGORM) toDomain() inventory.Settings {
	thresholds, err := inventory.NewThresholds(g.LowStockThreshold, g.CriticalStockThreshold)
	if err != nil {
		thresholds = inventory.DefaultThresholds()
	}
	return inventory.Settings{
		Thresholds:        thresholds,
		LowStockAlerts:    g.LowStockAlerts,
		OutOfStockAlerts:  g.OutOfStockAlerts,
		EmailAlerts:       g.EmailAlerts,
		AlertEmailAddress: g.AlertEmailAddress,
	}
}

func toSettingsGORM(s inventory.Settings) *SettingsGORM {
	return &SettingsGORM{
		ID:                     settingsRowID,
		LowStockThreshold:      s.Thresholds.Low(),
		CriticalStockThreshold: s.Thresholds.Critical(),
		LowStockAlerts:         s.LowStockAlerts,
		OutOfStockAlerts:       s.OutOfStockAlerts,
		EmailAlerts:            s.EmailAlerts,
		AlertEmailAddress:      s.AlertEmailAddress,
	}
}
