package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// errorResponse is the envelope of every failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler maps error kinds to status codes and renders
// {"error": {"message", "status"}}. Unclassified errors are logged and
// answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: errorBody{Message: msg, Status: code}})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, domain.Message(err)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.Message(err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Message(err)
	}

	// Bind failures, unknown routes, method mismatches.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
