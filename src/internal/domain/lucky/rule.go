package lucky

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ===========================
// WinningRule 中獎規則
// ===========================

// RuleKind 規則類型（持久化時與 JSON 參數一起儲存）
type RuleKind string

const (
	RuleKindDivisibleBy RuleKind = "divisible_by"
	RuleKindRange       RuleKind = "range"
	RuleKindNumberSet   RuleKind = "number_set"
)

// WinningRule 幸運號碼的中獎判斷
//
// 每個折扣活動各自設定一條規則，由管理端選擇類型並填入參數。
type WinningRule interface {
	// Kind 規則類型
	Kind() RuleKind
	// Matches 號碼是否中獎
	Matches(n LuckyNumber) bool
	// Validate 管理端儲存時驗證參數
	Validate() error
	// Describe 給客人看的規則說明
	Describe() string
}

// DivisibleBy 號碼能被 Divisor 整除即中獎
type DivisibleBy struct {
	Divisor int `json:"divisor"`
}

func (r DivisibleBy) Kind() RuleKind { return RuleKindDivisibleBy }

func (r DivisibleBy) Matches(n LuckyNumber) bool {
	return r.Divisor > 0 && n.Int()%r.Divisor == 0
}

func (r DivisibleBy) Validate() error {
	if r.Divisor < 1 || r.Divisor > MaxLuckyNumber {
		return ErrInvalidRule.WithContext("kind", string(r.Kind()), "divisor", r.Divisor)
	}
	return nil
}

func (r DivisibleBy) Describe() string {
	return fmt.Sprintf("lucky numbers divisible by %d", r.Divisor)
}

// Range 號碼落在 [Min, Max] 即中獎
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Kind() RuleKind { return RuleKindRange }

func (r Range) Matches(n LuckyNumber) bool {
	return n.Int() >= r.Min && n.Int() <= r.Max
}

func (r Range) Validate() error {
	if r.Min < MinLuckyNumber || r.Max > MaxLuckyNumber || r.Min > r.Max {
		return ErrInvalidRule.WithContext("kind", string(r.Kind()), "min", r.Min, "max", r.Max)
	}
	return nil
}

func (r Range) Describe() string {
	return fmt.Sprintf("lucky numbers from %d to %d", r.Min, r.Max)
}

// NumberSet 號碼屬於指定集合即中獎
type NumberSet struct {
	Numbers []int `json:"numbers"`
}

func (r NumberSet) Kind() RuleKind { return RuleKindNumberSet }

func (r NumberSet) Matches(n LuckyNumber) bool {
	for _, v := range r.Numbers {
		if v == n.Int() {
			return true
		}
	}
	return false
}

func (r NumberSet) Validate() error {
	if len(r.Numbers) == 0 {
		return ErrInvalidRule.WithContext("kind", string(r.Kind()), "reason", "numbers cannot be empty")
	}
	for _, v := range r.Numbers {
		if v < MinLuckyNumber || v > MaxLuckyNumber {
			return ErrInvalidRule.WithContext("kind", string(r.Kind()), "number", v)
		}
	}
	return nil
}

func (r NumberSet) Describe() string {
	nums := append([]int(nil), r.Numbers...)
	sort.Ints(nums)
	return fmt.Sprintf("lucky numbers %v", nums)
}

// ===========================
// 序列化
// ===========================

// ParseRule 依類型解析 JSON 參數並驗證
func ParseRule(kind RuleKind, raw []byte) (WinningRule, error) {
	var rule WinningRule
	switch kind {
	case RuleKindDivisibleBy:
		var r DivisibleBy
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, ErrInvalidRule.WithContext("kind", string(kind), "parse_error", err.Error())
		}
		rule = r
	case RuleKindRange:
		var r Range
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, ErrInvalidRule.WithContext("kind", string(kind), "parse_error", err.Error())
		}
		rule = r
	case RuleKindNumberSet:
		var r NumberSet
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, ErrInvalidRule.WithContext("kind", string(kind), "parse_error", err.Error())
		}
		rule = r
	default:
		return nil, ErrInvalidRule.WithContext("kind", string(kind), "reason", "unknown rule kind")
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

// MarshalRule 將規則參數序列化為 JSON
func MarshalRule(rule WinningRule) ([]byte, error) {
	return json.Marshal(rule)
}
