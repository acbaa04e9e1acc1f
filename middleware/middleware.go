package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextKeyRequestID string = "requestID"
	ContextKeyHandler   string = "handler"
	ContextKeyRequest   string = "request"
)

const (
	HeaderXRequestID = "X-Request-ID"

	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
)

func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(ContextKeyRequestID).(string); ok {
		return requestID
	}

	return uuid.NewString()
}

func GetHandler(c echo.Context) string {
	if handler, ok := c.Get(ContextKeyHandler).(string); ok {
		return handler
	}

	return ""
}

// Handler tags the request with a handler name used by the request and error loggers.
func Handler(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyHandler, name)

			return next(c)
		}
	}
}
