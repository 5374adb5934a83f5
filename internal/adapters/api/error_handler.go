package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"randohub/internal/adapters/api/handler"
	"randohub/internal/domain"
	"randohub/internal/ports/output"
)

// errorResponse is the error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var statusByCode = map[string]int{
	"event_not_found":           http.StatusNotFound,
	"participation_not_found":   http.StatusNotFound,
	"user_not_found":            http.StatusNotFound,
	"event_in_past":             http.StatusBadRequest,
	"invalid_filter":            http.StatusBadRequest,
	"invalid_difficulty":        http.StatusBadRequest,
	"unknown_field":             http.StatusBadRequest,
	"invalid_value":             http.StatusBadRequest,
	"invalid_verification_code": http.StatusBadRequest,
	"already_registered":        http.StatusConflict,
	"participant_attended":      http.StatusBadRequest,
	"user_exists":               http.StatusConflict,
	"invalid_credentials":       http.StatusUnauthorized,
	"user_not_verified":         http.StatusForbidden,
	"forbidden":                 http.StatusForbidden,
}

// NewHTTPErrorHandler maps domain errors to status codes and localized
// messages. Unexpected errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(t output.T, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := resolveError(err, t, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, t output.T, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	locale := handler.Locale(c)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if code := domain.Code(err); code != "" {
		status, ok := statusByCode[code]
		if !ok {
			status = http.StatusBadRequest
		}
		return status, errorResponse{Error: t.T(locale, "error."+code, nil), Code: code}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: t.T(locale, "error.internal", nil), Code: "internal"}
}
