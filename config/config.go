// Package config assembles the configuration of the bm-gateway binaries
// from BM_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	redisdb "github.com/octabyte/bm-gateway/db/redis"
	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/mockapi"
	"github.com/octabyte/bm-gateway/otel"
	"github.com/octabyte/bm-gateway/queue"
	"github.com/octabyte/bm-gateway/session"
	"github.com/octabyte/bm-gateway/utils/logger"
)

const (
	apiBaseURLVar     = "BM_API_BASE_URL"
	refreshPathVar    = "BM_REFRESH_PATH"
	httpTimeoutVar    = "BM_HTTP_TIMEOUT"
	logLevelVar       = "BM_LOG_LEVEL"
	envVar            = "BM_ENV"
	serviceNameVar    = "BM_SERVICE_NAME"
	redisAddrVar      = "BM_REDIS_ADDR"
	redisPasswordVar  = "BM_REDIS_PASSWORD"
	redisDBVar        = "BM_REDIS_DB"
	sessionKeyVar     = "BM_SESSION_KEY"
	sessionTTLVar     = "BM_SESSION_TTL"
	amqpURIVar        = "BM_AMQP_URI"
	eventsExchangeVar = "BM_EVENTS_EXCHANGE"
	otelEnabledVar    = "BM_OTEL_ENABLED"
	otelEndpointVar   = "BM_OTEL_ENDPOINT"
	otelHeadersVar    = "BM_OTEL_HEADERS"
	otelSampleRateVar = "BM_OTEL_SAMPLE_RATE"
	mockAPIAddrVar    = "BM_MOCKAPI_ADDR"
	jwtSecretVar      = "BM_JWT_SECRET"
	adminEmailVar     = "BM_ADMIN_EMAIL"
	adminPasswordVar  = "BM_ADMIN_PASSWORD"
	accessTTLVar      = "BM_ACCESS_TTL"
)

const DefaultEventsExchange = "bm.sessions"

type Config struct {
	Env     string
	Gateway gateway.Config
	Logger  logger.Config
	Otel    otel.OtelConfig

	// Redis is nil when BM_REDIS_ADDR is unset; sessions then live in memory.
	Redis      *redisdb.Config
	SessionKey string
	SessionTTL time.Duration

	// Queue is nil when BM_AMQP_URI is unset; session events are not published.
	Queue *queue.ConnectionConfig

	MockAPIAddr string
	MockAPI     mockapi.Config
}

// Load reads the environment. Only the variables a binary uses need to be
// set; LoadClient and LoadMockAPI validate the relevant part.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         GetEnv(envVar, "development"),
		SessionKey:  GetEnv(sessionKeyVar, session.DefaultKey),
		MockAPIAddr: GetEnv(mockAPIAddrVar, "localhost:8080"),
	}
	serviceName := GetEnv(serviceNameVar, gateway.DefaultServiceName)

	timeout, err := getDuration(httpTimeoutVar, gateway.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", httpTimeoutVar, err)
	}
	cfg.Gateway = gateway.Config{
		BaseURL:     GetEnv(apiBaseURLVar, "http://localhost:8080"+mockapi.DefaultBasePath),
		RefreshPath: GetEnv(refreshPathVar, gateway.DefaultRefreshPath),
		Timeout:     timeout,
		ServiceName: serviceName,
		UserAgent:   serviceName,
	}

	cfg.Logger = logger.Config{
		Level:       GetEnv(logLevelVar, enums.LogLevelInfo),
		Env:         cfg.Env,
		ServiceName: serviceName,
	}

	if cfg.SessionTTL, err = getDuration(sessionTTLVar, 0); err != nil {
		return nil, fmt.Errorf("%s: %w", sessionTTLVar, err)
	}
	if addr := GetEnv(redisAddrVar, ""); addr != "" {
		db, err := getInt(redisDBVar, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", redisDBVar, err)
		}
		cfg.Redis = &redisdb.Config{Addr: addr, Password: GetEnv(redisPasswordVar, ""), DB: db}
	}

	if uri := GetEnv(amqpURIVar, ""); uri != "" {
		cfg.Queue = &queue.ConnectionConfig{
			URI:      uri,
			Exchange: &queue.ExchangeConfig{Name: GetEnv(eventsExchangeVar, DefaultEventsExchange), Durable: true},
		}
	}

	if cfg.Otel, err = loadOtel(serviceName, cfg.Env); err != nil {
		return nil, err
	}

	accessTTL, err := getDuration(accessTTLVar, mockapi.DefaultAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", accessTTLVar, err)
	}
	cfg.MockAPI = mockapi.Config{
		Secret:        GetEnv(jwtSecretVar, ""),
		AccessTTL:     accessTTL,
		AdminEmail:    GetEnv(adminEmailVar, ""),
		AdminPassword: GetEnv(adminPasswordVar, ""),
		ServiceName:   serviceName + "-mockapi",
	}

	return cfg, nil
}

func loadOtel(serviceName, env string) (otel.OtelConfig, error) {
	enabled, err := getBool(otelEnabledVar, false)
	if err != nil {
		return otel.OtelConfig{}, fmt.Errorf("%s: %w", otelEnabledVar, err)
	}
	rate, err := getFloat(otelSampleRateVar, 1.0)
	if err != nil {
		return otel.OtelConfig{}, fmt.Errorf("%s: %w", otelSampleRateVar, err)
	}
	return otel.OtelConfig{
		Enabled:     enabled,
		Endpoint:    GetEnv(otelEndpointVar, ""),
		ServiceName: serviceName,
		Headers:     getMap(otelHeadersVar),
		Environment: env,
		SampleRate:  rate,
	}, nil
}

// ValidateClient checks what the CLI needs: gateway, logger and the
// optional redis and queue settings.
func (cfg *Config) ValidateClient() error {
	if err := cfg.validateLogLevel(); err != nil {
		return err
	}
	if err := cfg.Gateway.Validate(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	if cfg.Redis != nil {
		if err := v.Struct(cfg.Redis); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if cfg.Queue != nil {
		if err := v.Struct(cfg.Queue); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}
	return nil
}

func (cfg *Config) ValidateMockAPI() error {
	if err := cfg.validateLogLevel(); err != nil {
		return err
	}
	if err := validator.New().Var(cfg.MockAPIAddr, "required,hostname_port"); err != nil {
		return fmt.Errorf("%s: %w", mockAPIAddrVar, err)
	}
	if err := cfg.MockAPI.Validate(); err != nil {
		return fmt.Errorf("mockapi: %w", err)
	}
	return nil
}

func (cfg *Config) validateLogLevel() error {
	if !enums.IsLogLevel(cfg.Logger.Level) {
		return fmt.Errorf("%s: unknown level %q", logLevelVar, cfg.Logger.Level)
	}
	return nil
}
