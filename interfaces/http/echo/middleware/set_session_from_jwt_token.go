package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

// SessionClaims are the claims of an access token: the member it was issued
// to and the key generation it was signed under.
type SessionClaims struct {
	User       models.UserProfile `json:"user"`
	Generation int64              `json:"gen,omitempty"`
	jwt.RegisteredClaims
}

// SetSessionFromJWTToken verifies the HS256 token stored by
// SetTokenInContext and, when valid and accepted, stores its user under
// JWTSessionKey. Invalid tokens leave the request anonymous.
func SetSessionFromJWTToken(secret []byte, accept func(*SessionClaims) bool) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := TokenFromContext(c)
			if raw == "" {
				return next(c)
			}

			claims := &SessionClaims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil {
				log.Debugf("rejecting access token: %v", err)
				return next(c)
			}
			if accept != nil && !accept(claims) {
				return next(c)
			}

			c.Set(JWTSessionKey, claims.User)
			return next(c)
		}
	}
}

func SessionFromContext(c echo.Context) (models.UserProfile, bool) {
	user, ok := c.Get(JWTSessionKey).(models.UserProfile)
	return user, ok
}

// RequireSession answers 401 for requests without a verified session.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFromContext(c); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "You are not authorized",
				})
			}
			return next(c)
		}
	}
}

// RequireRole answers 403 unless the session user has one of roles.
func RequireRole(roles ...enums.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := SessionFromContext(c)
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"success": false,
				"message": "Forbidden",
			})
		}
	}
}
