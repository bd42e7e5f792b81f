package inventory

// Settings 庫存設定（inventory_settings）
type Settings struct {
	Thresholds        Thresholds
	LowStockAlerts    bool
	OutOfStockAlerts  bool
	EmailAlerts       bool
	AlertEmailAddress string
}

// DefaultSettings 預設設定：全部提醒開啟，尚未設定收件人
func DefaultSettings() Settings {
	return Settings{
		Thresholds:       DefaultThresholds(),
		LowStockAlerts:   true,
		OutOfStockAlerts: true,
		EmailAlerts:      true,
	}
}

// ShouldAlert 某個庫存等級是否需要發送 email 提醒
//
// - healthy 永不提醒
// - out_of_stock 依 OutOfStockAlerts
// - critical / low 依 LowStockAlerts
// - 皆需 EmailAlerts 開啟且有收件人
func (s Settings) ShouldAlert(level StockLevel) bool {
	if !s.EmailAlerts || s.AlertEmailAddress == "" {
		return false
	}
	switch level {
	case StockLevelOutOfStock:
		return s.OutOfStockAlerts
	case StockLevelCritical, StockLevelLow:
		return s.LowStockAlerts
	default:
		return false
	}
}
