package mockapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/models"
)

type envelope struct {
	Success    bool             `json:"success"`
	StatusCode int              `json:"statusCode"`
	Message    string           `json:"message,omitempty"`
	Meta       *models.PageMeta `json:"meta,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{Success: true, StatusCode: status, Message: message, Data: data})
}

func page(c echo.Context, message string, meta models.PageMeta, data interface{}) error {
	return c.JSON(http.StatusOK, envelope{Success: true, StatusCode: http.StatusOK, Message: message, Meta: &meta, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{StatusCode: status, Message: message})
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, isString := he.Message.(string); isString {
			message = msg
		}
	} else {
		s.logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	if err := fail(c, status, message); err != nil {
		s.logger.Error("failed to write error response", zap.Error(err))
	}
}
