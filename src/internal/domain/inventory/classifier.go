package inventory

// StockLevel 庫存等級
type StockLevel string

const (
	StockLevelOutOfStock StockLevel = "out_of_stock"
	StockLevelCritical   StockLevel = "critical"
	StockLevelLow        StockLevel = "low"
	StockLevelHealthy    StockLevel = "healthy"
)

// Classify 依庫存數量分級
//
//	qty <= 0          → out_of_stock
//	qty <= Critical   → critical
//	qty <= Low        → low
//	其他              → healthy
//
// 全函數，任何輸入都有唯一結果；負數庫存視為缺貨。
func Classify(quantity int, t Thresholds) StockLevel {
	switch {
	case quantity <= 0:
		return StockLevelOutOfStock
	case quantity <= t.critical:
		return StockLevelCritical
	case quantity <= t.low:
		return StockLevelLow
	default:
		return StockLevelHealthy
	}
}

// ProductStock 商品庫存
type ProductStock struct {
	ProductID ProductID
	Name      string
	Quantity  int
}

// Buckets 依庫存等級分組的商品（每個商品恰好出現在一組）
type Buckets struct {
	OutOfStock []ProductStock
	Critical   []ProductStock
	Low        []ProductStock
	Healthy    []ProductStock
}

// Total 所有分組的商品總數
func (b Buckets) Total() int {
	return len(b.OutOfStock) + len(b.Critical) + len(b.Low) + len(b.Healthy)
}

// Partition 將商品清單分組，保留原本順序
func Partition(products []ProductStock, t Thresholds) Buckets {
	var b Buckets
	for _, p := range products {
		switch Classify(p.Quantity, t) {
		case StockLevelOutOfStock:
			b.OutOfStock = append(b.OutOfStock, p)
		case StockLevelCritical:
			b.Critical = append(b.Critical, p)
		case StockLevelLow:
			b.Low = append(b.Low, p)
		default:
			b.Healthy = append(b.Healthy, p)
		}
	}
	return b
}
