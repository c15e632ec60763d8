package echo

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
)

// Middleware returns an Echo middleware that instruments HTTP requests with
// OpenTelemetry. Requests matched by skipper, when set, are not traced.
func Middleware(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	baseMiddleware := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		handler := baseMiddleware(next)

		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			err := handler(c)

			span := trace.SpanFromContext(c.Request().Context())
			if span.IsRecording() {
				span.SetAttributes(
					attribute.String("http.route", c.Path()),
					attribute.Int("http.status_code", c.Response().Status),
					attribute.Bool("user.token_present", middleware.TokenFromContext(c) != ""),
				)
				if user, ok := middleware.SessionFromContext(c); ok {
					span.SetAttributes(attribute.String("user.id", user.ID), attribute.String("user.role", string(user.Role)))
				}
				if err != nil {
					span.SetAttributes(attribute.String("error.message", err.Error()))
				}
			}

			return err
		}
	}
}
