package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorMapper resolves a handler error to a status and a plain-text body. It reports false for
// errors it does not own.
type ErrorMapper func(err error) (status int, message string, ok bool)

type ErrorHandlerConfig struct {
	Logger                *zerolog.Logger
	LogErrors             bool
	IncludeInternalErrors bool
	// Mappers are consulted in order before *echo.HTTPError rendering.
	Mappers []ErrorMapper
}

// ErrorHandler writes mapped domain errors as plain text and *echo.HTTPError as
// {"message": ...} JSON. Anything else is logged and handed to next.
func ErrorHandler(next echo.HTTPErrorHandler, config ...*ErrorHandlerConfig) echo.HTTPErrorHandler {
	cfg := getErrorHandlerConfig(config)

	return func(err error, ectx echo.Context) {
		if ectx.Response().Committed {
			return
		}

		if status, message, ok := cfg.mapError(err); ok {
			cfg.logFailure(ectx, status, err, nil)
			writeError(ectx, status, func() error { return ectx.String(status, message) })

			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			cfg.logFailure(ectx, httpErr.Code, httpErr.Unwrap(), httpErr.Message)
			writeError(ectx, httpErr.Code, func() error {
				return ectx.JSON(httpErr.Code, buildErrorResponse(httpErr, cfg.IncludeInternalErrors))
			})

			return
		}

		if cfg.LogErrors && cfg.Logger != nil {
			cfg.Logger.Error().
				Err(err).
				Fields(requestFields(ectx)).
				Msg("Unhandled error")
		}

		if next != nil {
			next(err, ectx)
		}
	}
}

func getErrorHandlerConfig(config []*ErrorHandlerConfig) *ErrorHandlerConfig {
	if len(config) > 0 && config[0] != nil {
		return config[0]
	}

	return &ErrorHandlerConfig{} //nolint:exhaustruct
}

func (cfg *ErrorHandlerConfig) mapError(err error) (int, string, bool) {
	for _, mapper := range cfg.Mappers {
		if status, message, ok := mapper(err); ok {
			return status, message, true
		}
	}

	return 0, "", false
}

// writeError drops the body for HEAD requests.
func writeError(ectx echo.Context, status int, write func() error) {
	if ectx.Request().Method == http.MethodHead {
		_ = ectx.NoContent(status)

		return
	}

	_ = write()
}

func buildErrorResponse(httpErr *echo.HTTPError, includeInternal bool) map[string]any {
	response := map[string]any{
		"message": httpErr.Message,
	}

	if includeInternal {
		if internal := httpErr.Unwrap(); internal != nil {
			response["internal"] = internal.Error()
		}
	}

	return response
}

func (cfg *ErrorHandlerConfig) logFailure(ectx echo.Context, status int, cause error, message any) {
	if !cfg.LogErrors || cfg.Logger == nil {
		return
	}

	fields := requestFields(ectx)
	fields["status_code"] = status

	if message != nil {
		fields["error_message"] = message
	}

	level, msg := zerolog.InfoLevel, "HTTP error"

	switch {
	case status >= http.StatusInternalServerError:
		level, msg = zerolog.ErrorLevel, "Request failed with server error"
	case status >= http.StatusBadRequest:
		level, msg = zerolog.WarnLevel, "Request failed with client error"
	}

	event := cfg.Logger.WithLevel(level).Fields(fields)
	if cause != nil {
		event = event.Err(cause)
	}

	event.Msg(msg)
}

func requestFields(ectx echo.Context) map[string]any {
	fields := map[string]any{
		"path":   ectx.Request().URL.Path,
		"method": ectx.Request().Method,
	}

	if id, ok := ectx.Get(ContextKeyRequestID).(string); ok && id != "" {
		fields["request_id"] = id
	}

	if handler := GetHandler(ectx); handler != "" {
		fields["handler"] = handler
	}

	return fields
}
