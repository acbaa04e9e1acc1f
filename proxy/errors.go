package proxy

import (
	"errors"
	"fmt"

	"github.com/andyle182810/catalogproxy/httpclient"
)

const (
	ParamEndpoint = "endpoint"
	ParamURL      = "url"
)

var (
	ErrMissingParameter = errors.New("proxy: missing parameter")
	ErrUpstream         = errors.New("proxy: upstream request failed")
	ErrMalformedJSON    = errors.New("proxy: upstream returned malformed JSON")
)

// MissingParameterError reports a request without its required selector parameter.
type MissingParameterError struct {
	Param string
}

func MissingParameter(param string) *MissingParameterError {
	return &MissingParameterError{Param: param}
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("proxy: missing %q parameter", e.Param)
}

// Message is the client-facing text for the 400 response.
func (e *MissingParameterError) Message() string {
	return fmt.Sprintf("Missing '%s' query parameter.", e.Param)
}

func (e *MissingParameterError) Is(target error) bool {
	return errors.Is(target, ErrMissingParameter)
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// UpstreamError wraps any failure of the outbound call. StatusCode and Body are kept for
// diagnostics only; StatusCode is 0 when no response was received.
type UpstreamError struct {
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func newUpstreamError(rawURL string, err error) *UpstreamError {
	upErr := &UpstreamError{
		URL:        rawURL,
		StatusCode: 0,
		Body:       nil,
		Err:        err,
	}

	if svcErr, ok := httpclient.IsServiceError(err); ok {
		upErr.StatusCode = svcErr.StatusCode
		upErr.Body = svcErr.Body
	}

	return upErr
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("proxy: upstream %s returned status %d: %v", e.URL, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("proxy: upstream %s failed: %v", e.URL, e.Err)
}

func (e *UpstreamError) Is(target error) bool {
	return errors.Is(target, ErrUpstream)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func IsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}

	return nil, false
}
