package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig lists the headers written on every response. Empty slices are omitted.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
}

func PermissiveCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}
}

// CORSHeaders sets the configured headers before the handler runs, so they are present on
// success and error responses alike, regardless of the request Origin. OPTIONS requests are
// answered with 204.
func CORSHeaders(config CORSConfig) echo.MiddlewareFunc {
	if config.AllowOrigin == "" {
		config.AllowOrigin = "*"
	}

	allowMethods := strings.Join(config.AllowMethods, ", ")
	allowHeaders := strings.Join(config.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Response().Header()
			header.Set(HeaderAllowOrigin, config.AllowOrigin)

			if allowMethods != "" {
				header.Set(HeaderAllowMethods, allowMethods)
			}

			if allowHeaders != "" {
				header.Set(HeaderAllowHeaders, allowHeaders)
			}

			if ctx.Request().Method == http.MethodOptions {
				return ctx.NoContent(http.StatusNoContent)
			}

			return next(ctx)
		}
	}
}
