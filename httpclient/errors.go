package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed    = errors.New("httpclient: request failed")
	ErrServiceError     = errors.New("httpclient: service error")
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
)

// ServiceError is returned for upstream responses outside the 2xx range.
type ServiceError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("httpclient: service returned status %d", e.StatusCode)
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(target, ErrServiceError)
}

func (e *ServiceError) Unwrap() error {
	return ErrServiceError
}

func NewServiceError(statusCode int, header http.Header, body []byte) *ServiceError {
	return &ServiceError{
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}

	return nil, false
}
