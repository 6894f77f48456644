package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Session      SessionConfig
	Redis        RedisConfig
	DB           DBConfig
	Catalog      CatalogConfig
	Order        OrderConfig
	Admin        AdminConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUMINA_APP_ENV" required:"true"`
	Port         string `envconfig:"LUMINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUMINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUMINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SessionConfig governs the per-browser-session stores (cart snapshot,
// search query, last order payload, admin credentials).
type SessionConfig struct {
	CookieName   string        `envconfig:"LUMINA_SESSION_COOKIE" default:"lumina_session"`
	CartTTL      time.Duration `envconfig:"LUMINA_SESSION_CART_TTL" default:"720h"`
	SearchTTL    time.Duration `envconfig:"LUMINA_SESSION_SEARCH_TTL" default:"24h"`
	LastOrderTTL time.Duration `envconfig:"LUMINA_SESSION_LAST_ORDER_TTL" default:"24h"`
	AdminTTL     time.Duration `envconfig:"LUMINA_SESSION_ADMIN_TTL" default:"12h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUMINA_REDIS_URL"`
	Address      string        `envconfig:"LUMINA_REDIS_ADDR"`
	Password     string        `envconfig:"LUMINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DBConfig configures the embedded sqlite store used when Redis is not
// available (single-node deployments and local development).
type DBConfig struct {
	Path            string        `envconfig:"LUMINA_DB_PATH" default:"lumina.db"`
	MaxOpenConns    int           `envconfig:"LUMINA_DB_MAX_OPEN_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"LUMINA_DB_CONN_MAX_LIFETIME" default:"1h"`
}

// Upstream is the normalized view of one consumed JSON-over-HTTP service.
type Upstream struct {
	Name             string
	BaseURL          string
	Timeout          time.Duration
	BreakerFailures  int
	BreakerCooldown  time.Duration
	BreakerHalfCalls int
}

type CatalogConfig struct {
	BaseURL          string        `envconfig:"LUMINA_CATALOG_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"LUMINA_CATALOG_TIMEOUT" default:"10s"`
	BreakerFailures  int           `envconfig:"LUMINA_CATALOG_BREAKER_FAILURES" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"LUMINA_CATALOG_BREAKER_COOLDOWN" default:"30s"`
	BreakerHalfCalls int           `envconfig:"LUMINA_CATALOG_BREAKER_HALF_CALLS" default:"2"`
}

func (c CatalogConfig) Upstream() Upstream {
	return Upstream{
		Name:             "catalog",
		BaseURL:          c.BaseURL,
		Timeout:          c.Timeout,
		BreakerFailures:  c.BreakerFailures,
		BreakerCooldown:  c.BreakerCooldown,
		BreakerHalfCalls: c.BreakerHalfCalls,
	}
}

type OrderConfig struct {
	BaseURL          string        `envconfig:"LUMINA_ORDER_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"LUMINA_ORDER_TIMEOUT" default:"15s"`
	BreakerFailures  int           `envconfig:"LUMINA_ORDER_BREAKER_FAILURES" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"LUMINA_ORDER_BREAKER_COOLDOWN" default:"30s"`
	BreakerHalfCalls int           `envconfig:"LUMINA_ORDER_BREAKER_HALF_CALLS" default:"2"`
}

func (o OrderConfig) Upstream() Upstream {
	return Upstream{
		Name:             "order",
		BaseURL:          o.BaseURL,
		Timeout:          o.Timeout,
		BreakerFailures:  o.BreakerFailures,
		BreakerCooldown:  o.BreakerCooldown,
		BreakerHalfCalls: o.BreakerHalfCalls,
	}
}

type AdminConfig struct {
	BaseURL          string        `envconfig:"LUMINA_ADMIN_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"LUMINA_ADMIN_TIMEOUT" default:"10s"`
	BreakerFailures  int           `envconfig:"LUMINA_ADMIN_BREAKER_FAILURES" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"LUMINA_ADMIN_BREAKER_COOLDOWN" default:"30s"`
	BreakerHalfCalls int           `envconfig:"LUMINA_ADMIN_BREAKER_HALF_CALLS" default:"2"`
}

func (a AdminConfig) Upstream() Upstream {
	return Upstream{
		Name:             "admin",
		BaseURL:          a.BaseURL,
		Timeout:          a.Timeout,
		BreakerFailures:  a.BreakerFailures,
		BreakerCooldown:  a.BreakerCooldown,
		BreakerHalfCalls: a.BreakerHalfCalls,
	}
}

type CheckoutConfig struct {
	Currency string `envconfig:"LUMINA_CHECKOUT_CURRENCY" default:"RUB"`
}

type FeatureFlagsConfig struct {
	UseSQLite bool `envconfig:"LUMINA_USE_SQLITE" default:"false"`
}

func (c *Config) validate() error {
	if !c.FeatureFlags.UseSQLite && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("either %s/%s or %s=true is required", EnvRedisURL, EnvRedisAddr, EnvUseSQLite)
	}
	return nil
}
