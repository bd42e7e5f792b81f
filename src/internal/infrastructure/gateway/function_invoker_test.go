package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stockAlert struct {
	To       string `json:"to"`
	Quantity int    `json:"quantity"`
}

// Test 1: 成功呼叫時送出正確的路徑、標頭與 JSON
func TestInvoke_Success(t *testing.T) {
	// Arrange
	var gotPath, gotAuth, gotContentType string
	var gotBody stockAlert
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	invoker := NewFunctionInvoker(Config{
		FunctionsURL: server.URL + "/functions/v1/",
		ServiceKey:   "service-key",
		Logger:       quietLogger(),
	})

	// Act
	err := invoker.Invoke(context.Background(), "send-stock-alert", stockAlert{To: "owner@jewels.example", Quantity: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/functions/v1/send-stock-alert", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, stockAlert{To: "owner@jewels.example", Quantity: 2}, gotBody)
}

// Test 2: 非 2xx 回應返回 GatewayUnavailable
func TestInvoke_NonSuccessStatus(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mail provider down", http.StatusBadGateway)
	}))
	defer server.Close()
	invoker := NewFunctionInvoker(Config{FunctionsURL: server.URL, Logger: quietLogger()})

	// Act
	err := invoker.Invoke(context.Background(), "send-lucky-discount-email", map[string]string{"to": "a@b.c"})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrGatewayUnavailable)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadGateway, domainErr.Context["status"])
}

// Test 3: 逾時返回 GatewayUnavailable
func TestInvoke_Timeout(t *testing.T) {
	// Arrange
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)
	invoker := NewFunctionInvoker(Config{
		FunctionsURL: server.URL,
		Timeout:      50 * time.Millisecond,
		Logger:       quietLogger(),
	})

	// Act
	err := invoker.Invoke(context.Background(), "send-stock-alert", nil)

	// Assert
	assert.ErrorIs(t, err, shared.ErrGatewayUnavailable)
}

// Test 4: 未設定 functions url
func TestInvoke_NotConfigured(t *testing.T) {
	invoker := NewFunctionInvoker(Config{Logger: quietLogger()})

	err := invoker.Invoke(context.Background(), "send-stock-alert", nil)

	assert.ErrorIs(t, err, shared.ErrGatewayUnavailable)
}
