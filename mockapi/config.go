package mockapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBasePath   = "/api/v1"
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type Config struct {
	// Secret signs the HS256 access tokens.
	Secret   string `validate:"required,min=16"`
	BasePath string `validate:"omitempty,startswith=/"`

	AccessTTL  time.Duration `validate:"gte=0"`
	RefreshTTL time.Duration `validate:"gte=0"`

	// AdminEmail and AdminPassword seed a super admin account when both are set.
	AdminEmail    string `validate:"omitempty,email"`
	AdminPassword string `validate:"required_with=AdminEmail"`

	// BcryptCost defaults to bcrypt.DefaultCost. Tests lower it to bcrypt.MinCost.
	BcryptCost  int `validate:"omitempty,min=4,max=31"`
	ServiceName string
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

func (cfg Config) withDefaults() Config {
	if cfg.BasePath == "" {
		cfg.BasePath = DefaultBasePath
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bm-mockapi"
	}
	return cfg
}
