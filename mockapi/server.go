// Package mockapi is an in-memory stand-in for the membership backend. It
// serves the auth, member and admin endpoints the client talks to, issuing
// short lived HS256 access tokens and rotating refresh tokens kept in an
// httpOnly cookie.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
	otelecho "github.com/octabyte/bm-gateway/otel/echo"
)

type Server struct {
	cfg    Config
	echo   *echo.Echo
	logger *zap.Logger
	data   *store

	// generation is embedded in every access token; bumping it invalidates
	// all tokens issued before.
	generation atomic.Int64
	refreshes  atomic.Int64
}

func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mockapi configuration: %w", err)
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.L().Named("mockapi")
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		data:   newStore(cfg.BcryptCost),
	}

	if cfg.AdminEmail != "" {
		if _, err := s.data.createUser("Super Admin", cfg.AdminEmail, "", cfg.AdminPassword, enums.RoleSuperAdmin); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	s.echo = s.newEcho()
	return s, nil
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = s.handleError

	e.Use(
		otelecho.Middleware(s.cfg.ServiceName, nil),
		s.requestLogger(),
		middleware.SetTokenInContext(),
		middleware.SetSessionFromJWTToken([]byte(s.cfg.Secret), s.acceptClaims),
	)

	s.routes(e.Group(s.cfg.BasePath))
	return e
}

// Handler serves the API, for example behind httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.Info("mockapi listening", zap.String("addr", addr), zap.String("basePath", s.cfg.BasePath))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RevokeAccessTokens makes every access token issued so far answer 401.
// Refresh tokens stay valid.
func (s *Server) RevokeAccessTokens() {
	s.generation.Add(1)
}

// RevokeRefreshTokens drops every refresh grant, the next refresh fails.
func (s *Server) RevokeRefreshTokens() {
	s.data.revokeAll()
}

// RefreshCount reports how many refresh requests were served successfully.
func (s *Server) RefreshCount() int64 {
	return s.refreshes.Load()
}

func (s *Server) acceptClaims(claims *middleware.SessionClaims) bool {
	if claims.Generation != s.generation.Load() {
		return false
	}
	user, ok := s.data.user(claims.User.ID)
	return ok && user.Status != enums.UserStatusBlocked
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.logger.Debug("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
