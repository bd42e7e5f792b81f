package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 訪客（未登入）以此標頭識別，用於轉盤次數計算
const sessionHeader = "X-Session-ID"

// 管理端角色
const (
	roleService = "service_role"
	roleAdmin   = "admin"
)

// Claims 後端認證服務簽發的 access token
//
// sub 為使用者 ID；auth_time（沒有時用 iat）為登入時間，作為幸運號碼的 session 種子。
type Claims struct {
	Email       string           `json:"email,omitempty"`
	Role        string           `json:"role,omitempty"`
	SessionID   string           `json:"session_id,omitempty"`
	AuthTime    *jwt.NumericDate `json:"auth_time,omitempty"`
	AppMetadata struct {
		Role string `json:"role,omitempty"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// Principal 已驗證的請求者
type Principal struct {
	UserID           string
	Email            string
	SessionID        string
	SessionStartedAt time.Time
	IsAdmin          bool
}

type principalKey struct{}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom 取出已驗證的請求者
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ===========================
// Authenticator
// ===========================

// Authenticator 驗證 HS256 Bearer token
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator 以共用密鑰創建驗證器
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

var (
	errMissingToken       = errors.New("missing bearer token")
	errMissingSessionTime = errors.New("token has neither auth_time nor iat")
)

// Verify 驗證 token 並轉為 Principal
func (a *Authenticator) Verify(raw string) (Principal, error) {
	claims := &Claims{}
	keyFunc := func(*jwt.Token) (interface{}, error) { return a.secret, nil }
	_, err := jwt.ParseWithClaims(raw, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Principal{}, err
	}
	if claims.Subject == "" {
		return Principal{}, errors.New("token has no subject")
	}

	// 幸運號碼以登入時間為種子，缺少時所有 session 會落在同一個號碼
	var startedAt time.Time
	switch {
	case claims.AuthTime != nil:
		startedAt = claims.AuthTime.Time
	case claims.IssuedAt != nil:
		startedAt = claims.IssuedAt.Time
	default:
		return Principal{}, errMissingSessionTime
	}

	return Principal{
		UserID:           claims.Subject,
		Email:            claims.Email,
		SessionID:        claims.SessionID,
		SessionStartedAt: startedAt,
		IsAdmin:          claims.Role == roleService || claims.AppMetadata.Role == roleAdmin,
	}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization header must use the Bearer scheme")
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, APIResponse{Code: "UNAUTHORIZED", Message: message})
}

// RequireAuth 必須登入
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r)
		if err != nil {
			unauthorized(w, "Please sign in to continue.")
			return
		}
		p, err := a.Verify(raw)
		if err != nil {
			unauthorized(w, "Your session has expired or is invalid. Please sign in again.")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// OptionalAuth 有 token 就驗證，沒有則以訪客身分繼續
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r)
		if errors.Is(err, errMissingToken) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			unauthorized(w, "Your session has expired or is invalid. Please sign in again.")
			return
		}
		p, err := a.Verify(raw)
		if err != nil {
			unauthorized(w, "Your session has expired or is invalid. Please sign in again.")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// RequireAdmin 必須是管理端（須在 RequireAuth 之後）
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok || !p.IsAdmin {
			writeJSON(w, http.StatusForbidden, APIResponse{
				Code:    "FORBIDDEN",
				Message: "This action is only available to store administrators.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// spinIdentity 登入的客人用 user id，訪客用 X-Session-ID
func spinIdentity(r *http.Request) (userID, sessionID string) {
	if p, ok := PrincipalFrom(r.Context()); ok {
		return p.UserID, ""
	}
	return "", strings.TrimSpace(r.Header.Get(sessionHeader))
}
