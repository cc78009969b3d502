package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:5000/api/"`
	APITimeout  time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	APIRetryMax int           `envconfig:"API_RETRY_MAX" default:"0"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret  string `envconfig:"CSRF_SECRET" required:"true"`
	IDURLSecret string `envconfig:"ID_URL_SECRET" required:"true"`

	ListPageSize      int           `envconfig:"LIST_PAGE_SIZE" default:"5"`
	ListIdleTTL       time.Duration `envconfig:"LIST_IDLE_TTL" default:"15m"`
	ListSweepInterval time.Duration `envconfig:"LIST_SWEEP_INTERVAL" default:"1m"`

	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"10m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.IDURLSecret == "" {
		return nil, errors.New("id url secret must be provided")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api base url must be provided")
	}
	if cfg.ListPageSize <= 0 {
		return nil, errors.New("list page size must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
