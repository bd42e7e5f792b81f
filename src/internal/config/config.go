package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ===========================
// 設定結構
// ===========================

// Config rewardsd 的設定
//
// 載入順序：預設值 → YAML 檔 → .env → 環境變數（後者覆蓋前者）
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Realtime RealtimeConfig `yaml:"realtime"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // sqlite | postgres | mysql
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Debug           bool          `yaml:"debug"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type GatewayConfig struct {
	FunctionsURL string        `yaml:"functions_url"`
	ServiceKey   string        `yaml:"service_key"`
	Timeout      time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	// Timezone 決定「每日」抽獎次數的日界線
	Timezone string `yaml:"timezone"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RealtimeConfig struct {
	Buffer int `yaml:"buffer"`
}

// Default 預設設定
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:rewards.db?_foreign_keys=on",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Gateway: GatewayConfig{
			Timeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Timezone: "Asia/Kolkata",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Realtime: RealtimeConfig{
			Buffer: 64,
		},
	}
}

// ===========================
// 載入
// ===========================

// Load 讀取設定檔與環境變數並驗證
//
// path 為空時只使用預設值與環境變數；工作目錄下的 .env 會被載入，
// 但不覆蓋已存在的環境變數。
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(path, os.LookupEnv)
}

// LoadWith 以指定的環境變數來源載入設定
func LoadWith(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envBinding 環境變數與設定欄位的對應
type envBinding struct {
	key   string
	apply func(value string) error
}

func (c *Config) envBindings() []envBinding {
	str := func(dst *string) func(string) error {
		return func(v string) error { *dst = v; return nil }
	}
	dur := func(dst *time.Duration) func(string) error {
		return func(v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			*dst = d
			return nil
		}
	}
	num := func(dst *int) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}
	flag := func(dst *bool) func(string) error {
		return func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*dst = b
			return nil
		}
	}

	return []envBinding{
		{"REWARDS_HTTP_ADDR", str(&c.HTTP.Addr)},
		{"REWARDS_HTTP_REQUEST_TIMEOUT", dur(&c.HTTP.RequestTimeout)},
		{"REWARDS_HTTP_SHUTDOWN_TIMEOUT", dur(&c.HTTP.ShutdownTimeout)},
		{"REWARDS_DATABASE_DRIVER", str(&c.Database.Driver)},
		{"REWARDS_DATABASE_DSN", str(&c.Database.DSN)},
		{"REWARDS_DATABASE_MAX_OPEN_CONNS", num(&c.Database.MaxOpenConns)},
		{"REWARDS_DATABASE_DEBUG", flag(&c.Database.Debug)},
		{"REWARDS_JWT_SECRET", str(&c.Auth.JWTSecret)},
		{"REWARDS_FUNCTIONS_URL", str(&c.Gateway.FunctionsURL)},
		{"REWARDS_SERVICE_KEY", str(&c.Gateway.ServiceKey)},
		{"REWARDS_GATEWAY_TIMEOUT", dur(&c.Gateway.Timeout)},
		{"REWARDS_STORE_TIMEZONE", str(&c.Store.Timezone)},
		{"REWARDS_LOG_LEVEL", str(&c.Log.Level)},
		{"REWARDS_LOG_FORMAT", str(&c.Log.Format)},
		{"REWARDS_REALTIME_BUFFER", num(&c.Realtime.Buffer)},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, b := range c.envBindings() {
		v, ok := lookup(b.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := b.apply(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.key, err))
		}
	}
	return errors.Join(errs...)
}

// ===========================
// 驗證
// ===========================

var (
	ErrAddrEmpty        = errors.New("http.addr is empty")
	ErrDSNEmpty         = errors.New("database.dsn is empty")
	ErrUnknownDriver    = errors.New("database.driver must be sqlite, postgres or mysql")
	ErrJWTSecretEmpty   = errors.New("auth.jwt_secret is empty")
	ErrInvalidTimezone  = errors.New("store.timezone is not a valid IANA zone")
	ErrNonPositiveValue = errors.New("timeouts and buffer sizes must be positive")
)

// Validate 檢查必要欄位，一次返回所有問題
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, ErrAddrEmpty)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrUnknownDriver, c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, ErrDSNEmpty)
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, ErrJWTSecretEmpty)
	}
	if _, err := time.LoadLocation(c.Store.Timezone); err != nil || c.Store.Timezone == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Store.Timezone))
	}
	if c.HTTP.RequestTimeout <= 0 || c.Gateway.Timeout <= 0 || c.Realtime.Buffer <= 0 {
		errs = append(errs, ErrNonPositiveValue)
	}
	return errors.Join(errs...)
}

// Location 商店時區（Validate 已確保有效）
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Store.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
