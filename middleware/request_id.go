package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type RequestIDConfig struct {
	Skipper      middleware.Skipper
	Generator    func() string
	AutoGenerate bool
	Validator    func(string) error
	// Logger, when set, is attached to the request context with a request_id field.
	Logger *zerolog.Logger
}

func DefaultRequestIDConfig() RequestIDConfig {
	return RequestIDConfig{
		Skipper:      middleware.DefaultSkipper,
		Generator:    uuid.NewString,
		AutoGenerate: false,
		Validator:    uuid.Validate,
		Logger:       nil,
	}
}

func RequestID(skipper middleware.Skipper) echo.MiddlewareFunc {
	config := DefaultRequestIDConfig()
	config.Skipper = skipper

	return RequestIDWithConfig(config)
}

// RequestIDWithConfig reads X-Request-ID from the request. With AutoGenerate a missing or
// invalid id is replaced by a generated one; otherwise both are rejected with 400.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Generator == nil {
		config.Generator = uuid.NewString
	}

	if config.Validator == nil {
		config.Validator = uuid.Validate
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			rid, err := resolveRequestID(ctx.Request(), config)
			if err != nil {
				return err
			}

			ctx.Request().Header.Set(HeaderXRequestID, rid)
			ctx.Response().Header().Set(HeaderXRequestID, rid)
			ctx.Set(ContextKeyRequestID, rid)

			if config.Logger != nil {
				logger := config.Logger.With().Str("request_id", rid).Logger()
				req := ctx.Request()
				ctx.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			}

			return next(ctx)
		}
	}
}

func resolveRequestID(req *http.Request, config RequestIDConfig) (string, error) {
	rid := strings.TrimSpace(req.Header.Get(HeaderXRequestID))

	if rid == "" {
		if !config.AutoGenerate {
			return "", echo.NewHTTPError(
				http.StatusBadRequest,
				fmt.Sprint("missing required header: ", HeaderXRequestID),
			)
		}

		return config.Generator(), nil
	}

	if err := config.Validator(rid); err != nil {
		if !config.AutoGenerate {
			return "", echo.NewHTTPError(
				http.StatusBadRequest,
				fmt.Sprintf("invalid %s: must be a valid UUID", HeaderXRequestID),
			)
		}

		return config.Generator(), nil
	}

	return rid, nil
}
