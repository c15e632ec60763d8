package echo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
	"github.com/octabyte/bm-gateway/models"
)

func TestMiddlewareRecordsSessionUser(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	e := echo.New()
	e.Use(Middleware("mockapi", func(c echo.Context) bool { return c.Path() == "/health" }))
	e.GET("/users/me", func(c echo.Context) error {
		c.Set(middleware.JWTSessionKey, models.UserProfile{ID: "u1", Role: "admin"})
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/users/me", "/health"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "u1", attrs["user.id"].AsString())
	assert.Equal(t, "admin", attrs["user.role"].AsString())
	assert.Equal(t, "/users/me", attrs["http.route"].AsString())
	assert.False(t, attrs["user.token_present"].AsBool())
}
