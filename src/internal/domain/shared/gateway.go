package shared

import "context"

// FunctionInvoker 後端 edge function 調用介面（例如寄送 email）
//
// 由 Infrastructure 實作（gateway.FunctionInvoker）。
// 失敗時返回 ErrGatewayUnavailable。
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, payload interface{}) error
}
