package loyalty

// PointsAmount 積分數量值對象
// 值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
//
// 建構約束：積分數量必須 >= 0
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, ErrNegativePointsAmount.WithContext("value", value)
	}
	return PointsAmount{value: value}, nil
}

// newPointsAmountUnchecked 內部建構函數
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// IsZero 是否為 0 點
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Add 相加（返回新的 PointsAmount）
func (p PointsAmount) Add(other PointsAmount) PointsAmount {
	return newPointsAmountUnchecked(p.value + other.value)
}

// Subtract 相減
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	if p.value < other.value {
		return PointsAmount{}, ErrInsufficientPoints.WithContext(
			"requested", other.value,
			"available", p.value,
		)
	}
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// Min 返回較小者
func (p PointsAmount) Min(other PointsAmount) PointsAmount {
	if other.value < p.value {
		return other
	}
	return p
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// ===========================
// TransactionType 積分流水類型
// ===========================

// TransactionType 積分流水類型
type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "purchase"     // 消費獲得
	TransactionTypeSignupBonus TransactionType = "signup_bonus" // 註冊獎勵
	TransactionTypeRedemption  TransactionType = "redemption"   // 結帳折抵
	TransactionTypeForfeit     TransactionType = "forfeit"      // 歸零
	TransactionTypeAdjustment  TransactionType = "adjustment"   // 人工調整（加點）
)

// ParseTransactionType 從字串解析流水類型
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	switch t {
	case TransactionTypePurchase, TransactionTypeSignupBonus, TransactionTypeRedemption,
		TransactionTypeForfeit, TransactionTypeAdjustment:
		return t, nil
	}
	return "", ErrInvalidTransactionType.WithContext("value", s)
}

// IsEarning 是否為增加積分的類型
func (t TransactionType) IsEarning() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSignupBonus, TransactionTypeAdjustment:
		return true
	}
	return false
}
