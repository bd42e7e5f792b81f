package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// 預設的呼叫逾時
const DefaultTimeout = 15 * time.Second

// 錯誤回應只保留前 512 bytes 供除錯
const maxErrorBody = 512

// Config edge function 調用設定
type Config struct {
	FunctionsURL string        // 例如 https://<project>.supabase.co/functions/v1
	ServiceKey   string        // 以 Bearer token 送出
	Timeout      time.Duration // 單次呼叫上限，0 表示 DefaultTimeout
	Logger       *slog.Logger
	Client       *http.Client // 測試時注入；nil 時依 Timeout 建立
}

// FunctionInvoker 以 HTTP POST 調用後端 edge function
//
// POST {FunctionsURL}/{name}，body 為 payload 的 JSON。
// 非 2xx 回應、連線失敗與逾時都返回 shared.ErrGatewayUnavailable。
type FunctionInvoker struct {
	baseURL    string
	serviceKey string
	timeout    time.Duration
	client     *http.Client
	logger     *slog.Logger
}

var _ shared.FunctionInvoker = (*FunctionInvoker)(nil)

// NewFunctionInvoker 創建調用器
func NewFunctionInvoker(cfg Config) *FunctionInvoker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	return &FunctionInvoker{
		baseURL:    strings.TrimRight(cfg.FunctionsURL, "/"),
		serviceKey: cfg.ServiceKey,
		timeout:    cfg.Timeout,
		client:     cfg.Client,
		logger:     cfg.Logger,
	}
}

// Invoke 調用 edge function
func (f *FunctionInvoker) Invoke(ctx context.Context, name string, payload interface{}) error {
	if f.baseURL == "" {
		return shared.ErrGatewayUnavailable.WithContext(
			"function", name,
			"reason", "functions url is not configured",
		)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	url := f.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.serviceKey)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return shared.ErrGatewayUnavailable.WithCause(fmt.Errorf("invoke %s: %w", name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return shared.ErrGatewayUnavailable.WithContext(
			"function", name,
			"status", resp.StatusCode,
			"body", string(snippet),
		)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	f.logger.Debug("edge function invoked",
		slog.String("function", name),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
