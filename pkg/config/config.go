package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Cache         CacheConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LENDSQR_APP_ENV" required:"true"`
	Port         string `envconfig:"LENDSQR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LENDSQR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LENDSQR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the remote user-listing endpoint. In dev, when a
// mock URL is configured, it is used instead of the base URL.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"LENDSQR_UPSTREAM_BASE_URL"`
	MockURL string        `envconfig:"LENDSQR_UPSTREAM_MOCK_URL"`
	Timeout time.Duration `envconfig:"LENDSQR_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	if u.BaseURL == "" && u.MockURL == "" {
		return fmt.Errorf("either %s or %s is required", EnvUpstreamBaseURL, EnvUpstreamMockURL)
	}
	return nil
}

// UsersURL resolves the user-collection URL for the given app environment.
func (u UpstreamConfig) UsersURL(app AppConfig) string {
	if app.IsDev() && u.MockURL != "" {
		return u.MockURL
	}
	if u.BaseURL != "" {
		return strings.TrimRight(u.BaseURL, "/") + "/users"
	}
	return u.MockURL
}

// CacheConfig tunes the user-collection cache. StaleAfter bounds how long a
// fetch result is served without a background refresh; EvictAfter bounds how
// long an unused entry survives at all.
type CacheConfig struct {
	StaleAfter    time.Duration `envconfig:"LENDSQR_CACHE_STALE_AFTER" default:"5m"`
	EvictAfter    time.Duration `envconfig:"LENDSQR_CACHE_EVICT_AFTER" default:"30m"`
	MaxRetries    uint64        `envconfig:"LENDSQR_CACHE_MAX_RETRIES" default:"2"`
	RetryBaseWait time.Duration `envconfig:"LENDSQR_CACHE_RETRY_BASE_WAIT" default:"500ms"`
	RetryMaxWait  time.Duration `envconfig:"LENDSQR_CACHE_RETRY_MAX_WAIT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LENDSQR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LENDSQR_REDIS_ADDR"`
	Password     string        `envconfig:"LENDSQR_REDIS_PASSWORD"`
	DB           int           `envconfig:"LENDSQR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LENDSQR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LENDSQR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LENDSQR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LENDSQR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LENDSQR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LENDSQR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LENDSQR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LENDSQR_JWT_EXPIRATION_MINUTES" default:"720"`
}

// SessionTTL returns how long a dashboard session stays valid.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"LENDSQR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"LENDSQR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"LENDSQR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}
