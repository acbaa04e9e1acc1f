package httpclient

import (
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout      = 30 * time.Second
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	ContentTypeJSON     = "application/json"
)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.resty.SetTimeout(timeout)
		}
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.resty.SetTransport(transport)
		}
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

// WithLogger routes resty's internal warnings and errors to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.resty.SetLogger(&restyLogger{logger: logger})
	}
}

type RequestOption func(*requestConfig)

func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		maps.Copy(rc.headers, headers)
	}
}

func WithQueryValues(values url.Values) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = url.Values{}
		}

		for key, vals := range values {
			for _, v := range vals {
				rc.query.Add(key, v)
			}
		}
	}
}
