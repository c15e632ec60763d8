package gateway

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultRefreshPath = "/auth/refresh-token"
	DefaultServiceName = "bm-gateway"
	DefaultTimeout     = 30 * time.Second
)

type Config struct {
	// BaseURL of the backend API, e.g. "https://api.example.com/api/v1".
	BaseURL string `validate:"required,url"`
	// RefreshPath is posted to, without a body, to exchange the refresh
	// cookie for a new access token.
	RefreshPath string `validate:"omitempty,startswith=/"`
	// Timeout bounds every HTTP call, refresh included.
	Timeout     time.Duration `validate:"gte=0"`
	ServiceName string
	UserAgent   string
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

func (cfg Config) withDefaults() Config {
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = DefaultRefreshPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	return cfg
}
