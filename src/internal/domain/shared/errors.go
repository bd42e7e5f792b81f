package shared

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型（各 bounded context 共用，HTTP 層據此映射狀態碼）
type ErrorCode string

// 跨領域共用的錯誤代碼
const (
	ErrCodeGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidWeights     ErrorCode = "INVALID_WEIGHTS"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// - Code：結構化錯誤代碼（errors.Is 依 Code 比較）
// - Message：給使用者看的訊息，必須具體且可操作
// - Context：除錯用的上下文
// - Cause：底層錯誤（例如資料庫錯誤），可透過 errors.Unwrap 取得
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
	Cause   error
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Context) > 0 {
		msg = fmt.Sprintf("%s (context: %+v)", msg, e.Context)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// WithContext 添加上下文信息（返回新的錯誤實例，原實例不變）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	return e.withContext(keyValues...)
}

func (e *DomainError) withContext(keyValues ...interface{}) *DomainError {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
		Cause:   e.Cause,
	}
}

// WithCause 附加底層錯誤（返回新的錯誤實例）
func (e *DomainError) WithCause(cause error) error {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: e.Context,
		Cause:   cause,
	}
}

// Is 實現 errors.Is 接口（依錯誤代碼判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Unwrap 返回底層錯誤
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrGatewayUnavailable 後端（資料庫 / edge function）無法使用
	ErrGatewayUnavailable = &DomainError{
		Code:    ErrCodeGatewayUnavailable,
		Message: "We could not reach the store backend. Please check your connection and try again.",
	}

	// ErrNotFound 通用的資料不存在
	ErrNotFound = &DomainError{
		Code:    ErrCodeNotFound,
		Message: "The requested record does not exist.",
	}

	// ErrInvalidWeights 權重配置無效（僅在管理端儲存時觸發）
	ErrInvalidWeights = &DomainError{
		Code:    ErrCodeInvalidWeights,
		Message: "Every active prize needs a positive whole-number weight, and at least one prize must be active.",
	}
)
