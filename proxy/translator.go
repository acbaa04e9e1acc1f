package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/andyle182810/catalogproxy/httpclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	proxyCatalog = "catalog"
	proxyStorage = "storage"
)

type Fetcher interface {
	Get(ctx context.Context, rawURL string, opts ...httpclient.RequestOption) (*httpclient.Response, error)
}

var _ Fetcher = (*httpclient.Client)(nil)

type Option func(*translator)

func WithMetrics(metrics *Metrics) Option {
	return func(t *translator) {
		t.metrics = metrics
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *translator) {
		t.logger = logger
	}
}

type translator struct {
	name    string
	fetcher Fetcher
	metrics *Metrics
	logger  zerolog.Logger
}

func newTranslator(name string, fetcher Fetcher, opts ...Option) translator {
	t := translator{
		name:    name,
		fetcher: fetcher,
		metrics: nil,
		logger:  log.Logger,
	}

	for _, opt := range opts {
		opt(&t)
	}

	return t
}

func (t *translator) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}

	return t.logger
}

func (t *translator) missing(param string) error {
	t.metrics.observe(t.name, outcomeMissingParameter, 0)

	return MissingParameter(param)
}

func (t *translator) forward(
	ctx context.Context,
	resolvedURL string,
	kind BodyKind,
	opts ...httpclient.RequestOption,
) (*Response, error) {
	logger := t.loggerFor(ctx).With().
		Str("proxy", t.name).
		Str("url", resolvedURL).
		Stringer("body_kind", kind).
		Logger()

	start := time.Now()

	resp, err := t.fetcher.Get(ctx, resolvedURL, opts...)
	if err != nil {
		return nil, t.fail(logger, newUpstreamError(resolvedURL, err), time.Since(start))
	}

	mapped, err := mapResponse(resp, kind)
	if err != nil {
		upErr := newUpstreamError(resolvedURL, err)
		upErr.StatusCode = resp.StatusCode

		return nil, t.fail(logger, upErr, time.Since(start))
	}

	t.metrics.observe(t.name, outcomeSuccess, time.Since(start))

	logger.Info().
		Int("status", resp.StatusCode).
		Int("size", len(resp.Body)).
		Dur("upstream_latency", resp.Duration).
		Msg("Upstream response received")

	return mapped, nil
}

func (t *translator) fail(logger zerolog.Logger, upErr *UpstreamError, elapsed time.Duration) error {
	t.metrics.observe(t.name, outcomeUpstreamError, elapsed)

	event := logger.Error().Err(upErr.Err)
	if upErr.StatusCode != 0 {
		event = event.Int("upstream_status", upErr.StatusCode).Bytes("upstream_body", upErr.Body)
	}

	event.Msg("Upstream request failed")

	return upErr
}

func mapResponse(resp *httpclient.Response, kind BodyKind) (*Response, error) {
	if kind == BodyBinary {
		return &Response{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType(),
			Body:        resp.Body,
			Kind:        BodyBinary,
		}, nil
	}

	body, err := compactJSON(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: "",
		Body:        body,
		Kind:        BodyJSON,
	}, nil
}

func compactJSON(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	return buf.Bytes(), nil
}

// cloneQuery copies query without the selector parameter.
func cloneQuery(query url.Values, exclude string) url.Values {
	out := make(url.Values, len(query))

	for key, values := range query {
		if key == exclude {
			continue
		}

		out[key] = append([]string(nil), values...)
	}

	return out
}
