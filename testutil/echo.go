package testutil

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/andyle182810/catalogproxy/middleware"
	"github.com/andyle182810/catalogproxy/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Options struct {
	Method        string            // HTTP method (GET, OPTIONS, etc.)
	Path          string            // Request path
	Body          []byte            // Request body
	Headers       map[string]string // Custom headers
	Query         url.Values        // Query parameters, multi-valued keys preserved
	ContentType   string            // Content-Type header, omitted when empty
	SkipRequestID bool              // Skip auto-generating X-Request-ID header
}

// NewEcho builds an echo instance with the same validator and error handler as the server.
func NewEcho(mappers ...middleware.ErrorMapper) *echo.Echo {
	iecho := echo.New()
	iecho.HideBanner = true
	iecho.HidePort = true
	iecho.Validator = validator.New()
	iecho.HTTPErrorHandler = middleware.ErrorHandler(iecho.DefaultHTTPErrorHandler, &middleware.ErrorHandlerConfig{ //nolint:exhaustruct
		Mappers: mappers,
	})

	return iecho
}

func SetupEchoContext(
	t *testing.T,
	opts *Options,
) (echo.Context, *httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	req := NewRequest(t, opts)
	rec := httptest.NewRecorder()
	ctx := NewEcho().NewContext(req, rec)

	return ctx, rec, req
}

func NewRequest(t *testing.T, opts *Options) *http.Request {
	t.Helper()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	requestPath := opts.Path
	if len(opts.Query) > 0 {
		requestPath = fmt.Sprintf("%s?%s", opts.Path, opts.Query.Encode())
	}

	req := httptest.NewRequest(method, requestPath, bytes.NewBuffer(opts.Body))

	if !opts.SkipRequestID {
		req.Header.Set(middleware.HeaderXRequestID, uuid.New().String())
	}

	if opts.ContentType != "" {
		req.Header.Set(echo.HeaderContentType, opts.ContentType)
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req
}

// Serve runs the request through the full echo router, middleware included.
func Serve(t *testing.T, handler http.Handler, opts *Options) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, NewRequest(t, opts))

	return rec
}
