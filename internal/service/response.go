package service

import (
	"errors"
	"net/http"

	"github.com/andyle182810/catalogproxy/proxy"
	"github.com/labstack/echo/v4"
)

const (
	MessageProxyFailure = "Error proxying request."

	contentTypeOctetStream = "application/octet-stream"
)

func writeResponse(c echo.Context, resp *proxy.Response) error {
	if resp.IsBinary() {
		contentType := resp.ContentType
		if contentType == "" {
			contentType = contentTypeOctetStream
		}

		return c.Blob(resp.StatusCode, contentType, resp.Body)
	}

	if len(resp.Body) == 0 {
		return c.NoContent(resp.StatusCode)
	}

	return c.JSONBlob(resp.StatusCode, resp.Body)
}

// routeError marks a failure returned by one of the proxy routes.
type routeError struct {
	route string
	err   error
}

func (e *routeError) Error() string {
	return e.route + ": " + e.err.Error()
}

func (e *routeError) Unwrap() error {
	return e.err
}

// MapProxyError answers a missing selector with 400 and any other proxy route failure with a
// flat 500. Upstream details stay in the logs. Errors from other routes are left to echo.
func MapProxyError(err error) (int, string, bool) {
	var routeErr *routeError
	if !errors.As(err, &routeErr) {
		return 0, "", false
	}

	var missing *proxy.MissingParameterError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, missing.Message(), true
	}

	return http.StatusInternalServerError, MessageProxyFailure, true
}
