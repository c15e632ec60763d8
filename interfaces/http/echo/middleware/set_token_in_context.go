package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SetTokenInContext stores the bearer token of the request, without its
// scheme, under TokenKey. The Authorization header wins over a cookie of
// the same name.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(Authorization)

			if token == "" {
				if cookie, err := c.Cookie(Authorization); err == nil {
					token = cookie.Value
				}
			}

			if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
				token = token[7:]
			}

			c.Set(TokenKey, strings.TrimSpace(token))
			return next(c)
		}
	}
}

func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
