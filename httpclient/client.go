package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	resty           *resty.Client
	maxResponseSize int64 // 0 means no limit
}

func New(opts ...Option) *Client {
	c := &Client{
		resty:           resty.New().SetTimeout(DefaultTimeout),
		maxResponseSize: 0,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxResponseSize > 0 {
		c.resty.SetResponseBodyLimit(int(c.maxResponseSize))
	}

	return c
}

// Get issues a GET to rawURL. Non-2xx responses are returned as *ServiceError. The call is
// bounded by both ctx and the client timeout.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error) {
	cfg := buildRequestConfig(opts...)

	req := c.resty.R().
		SetContext(ctx).
		SetHeaders(cfg.headers)

	if len(cfg.query) > 0 {
		req.SetQueryParamsFromValues(cfg.query)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		if errors.Is(err, resty.ErrResponseBodyTooLarge) {
			return nil, ErrResponseTooLarge
		}

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return handleResponse(resp)
}

func handleResponse(resp *resty.Response) (*Response, error) {
	if !resp.IsSuccess() {
		return nil, NewServiceError(resp.StatusCode(), resp.Header().Clone(), resp.Body())
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header().Clone(),
		Body:       resp.Body(),
		Duration:   resp.Time(),
	}, nil
}

func buildRequestConfig(opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers: make(map[string]string),
		query:   nil,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

type requestConfig struct {
	headers map[string]string
	query   url.Values
}
