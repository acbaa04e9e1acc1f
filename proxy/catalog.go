package proxy

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/andyle182810/catalogproxy/httpclient"
)

const (
	DefaultCatalogBaseURL = "https://api.discogs.com"
	DefaultAuthScheme     = "Discogs"
	DefaultUserAgent      = "TheSpindex/1.0 +https://thespindex-d6b69.web.app/"
)

type Credentials struct {
	Key    string
	Secret string
}

// Authorization renders the header value as "<scheme> key=<key>, secret=<secret>".
func (c Credentials) Authorization(scheme string) string {
	return fmt.Sprintf("%s key=%s, secret=%s", scheme, c.Key, c.Secret)
}

type CatalogConfig struct {
	BaseURL     string
	AuthScheme  string
	UserAgent   string
	Credentials Credentials
}

func (c CatalogConfig) withDefaults() CatalogConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultCatalogBaseURL
	}

	if c.AuthScheme == "" {
		c.AuthScheme = DefaultAuthScheme
	}

	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	return c
}

// CatalogTranslator forwards requests to the catalog API with credential headers.
type CatalogTranslator struct {
	translator

	cfg     CatalogConfig
	headers map[string]string
}

func NewCatalogTranslator(cfg CatalogConfig, fetcher Fetcher, opts ...Option) *CatalogTranslator {
	cfg = cfg.withDefaults()

	return &CatalogTranslator{
		translator: newTranslator(proxyCatalog, fetcher, opts...),
		cfg:        cfg,
		headers: map[string]string{
			httpclient.HeaderContentType:   httpclient.ContentTypeJSON,
			httpclient.HeaderAuthorization: cfg.Credentials.Authorization(cfg.AuthScheme),
			httpclient.HeaderUserAgent:     cfg.UserAgent,
		},
	}
}

func (t *CatalogTranslator) BaseURL() string {
	return t.cfg.BaseURL
}

// Translate forwards target with the passthrough query. Relative endpoints are decoded as
// JSON, absolute URLs are relayed as raw bytes with the upstream content type.
func (t *CatalogTranslator) Translate(ctx context.Context, target Target, query url.Values) (*Response, error) {
	if target.IsZero() {
		return nil, t.missing(ParamEndpoint)
	}

	resolved := target.Resolve(t.cfg.BaseURL)
	params := cloneQuery(query, ParamEndpoint)

	logger := t.loggerFor(ctx)
	logger.Debug().
		Str("proxy", t.name).
		Str("url", resolved).
		Stringer("target_kind", target.Kind()).
		Any("query", params).
		Msg("Forwarding request to catalog API")

	return t.forward(ctx, resolved, target.BodyKind(),
		httpclient.WithRequestHeaders(t.headers),
		httpclient.WithQueryValues(params),
	)
}
