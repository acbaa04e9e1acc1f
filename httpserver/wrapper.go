package httpserver

import (
	"net/http"

	"github.com/andyle182810/catalogproxy/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Wrapper binds the query string into a TREQ, stores it in the context and calls wrapped.
// Fields use `query` tags. Missing values are left zero for the handler to judge.
func Wrapper[TREQ any](wrapped func(echo.Context, *TREQ) error) echo.HandlerFunc {
	binder := &echo.DefaultBinder{}

	return func(ectx echo.Context) error {
		var req TREQ

		if err := binder.BindQueryParams(ectx, &req); err != nil {
			zerolog.Ctx(ectx.Request().Context()).Warn().
				Err(err).
				Str("path", ectx.Request().URL.Path).
				Msg("Failed to bind query parameters")

			return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters").SetInternal(err)
		}

		ectx.Set(middleware.ContextKeyRequest, &req)

		return wrapped(ectx, &req)
	}
}
