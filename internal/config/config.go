package config

import (
	"fmt"
	"time"

	"github.com/andyle182810/catalogproxy/validator"
	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/bytes"
)

type Config struct {
	// Application
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info" validate:"oneof=trace debug info warn error fatal panic"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`

	// HTTP Server
	HTTPServerHost         string        `env:"HTTP_SERVER_HOST"          envDefault:"0.0.0.0"`
	HTTPServerPort         int           `env:"HTTP_SERVER_PORT"          envDefault:"8080"    validate:"gte=0,lte=65535"`
	HTTPBodyLimit          string        `env:"HTTP_BODY_LIMIT"           envDefault:"1M"      validate:"bytesize"`
	HTTPServerReadTimeout  time.Duration `env:"HTTP_SERVER_READ_TIMEOUT"  envDefault:"30s"     validate:"gt=0"`
	HTTPServerWriteTimeout time.Duration `env:"HTTP_SERVER_WRITE_TIMEOUT" envDefault:"60s"     validate:"gt=0"`

	// Metric Server
	MetricServerEnabled      bool          `env:"METRIC_SERVER_ENABLED"       envDefault:"true"`
	MetricServerHost         string        `env:"METRIC_SERVER_HOST"          envDefault:"0.0.0.0"`
	MetricServerPort         int           `env:"METRIC_SERVER_PORT"          envDefault:"9090"    validate:"gte=0,lte=65535"`
	MetricServerReadTimeout  time.Duration `env:"METRIC_SERVER_READ_TIMEOUT"  envDefault:"10s"     validate:"gt=0"`
	MetricServerWriteTimeout time.Duration `env:"METRIC_SERVER_WRITE_TIMEOUT" envDefault:"10s"     validate:"gt=0"`

	// Graceful Shutdown
	GracefulShutdownPeriod time.Duration `env:"GRACEFUL_SHUTDOWN_PERIOD" envDefault:"10s" validate:"gt=0"`

	// Catalog API
	CatalogBaseURL    string `env:"CATALOG_BASE_URL"    envDefault:"https://api.discogs.com"                            validate:"required,http_url"`
	DiscogsKey        string `env:"DISCOGS_KEY"`
	DiscogsSecret     string `env:"DISCOGS_SECRET"`
	CatalogAuthScheme string `env:"CATALOG_AUTH_SCHEME" envDefault:"Discogs"                                            validate:"required"`
	CatalogUserAgent  string `env:"CATALOG_USER_AGENT"  envDefault:"TheSpindex/1.0 +https://thespindex-d6b69.web.app/" validate:"required"`

	// Upstream calls
	UpstreamTimeout         time.Duration `env:"UPSTREAM_TIMEOUT"           envDefault:"30s" validate:"gt=0"`
	UpstreamMaxResponseSize string        `env:"UPSTREAM_MAX_RESPONSE_SIZE" envDefault:"0"   validate:"bytesize"`

	// Routes
	CatalogProxyPath string `env:"CATALOG_PROXY_PATH" envDefault:"/catalog" validate:"required,routepath,nefield=StorageProxyPath"`
	StorageProxyPath string `env:"STORAGE_PROXY_PATH" envDefault:"/storage" validate:"required,routepath"`
}

func New() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return validate(&cfg)
}

// NewFromMap reads configuration from the given variables instead of the process environment.
func NewFromMap(vars map[string]string) (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil { //nolint:exhaustruct
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return validate(&cfg)
}

func validate(cfg *Config) (*Config, error) {
	if err := validator.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// UpstreamMaxResponseBytes is the parsed UPSTREAM_MAX_RESPONSE_SIZE; 0 means unlimited.
func (c *Config) UpstreamMaxResponseBytes() int64 {
	size, err := bytes.Parse(c.UpstreamMaxResponseSize)
	if err != nil {
		return 0
	}

	return size
}

func (c *Config) HasCatalogCredentials() bool {
	return c.DiscogsKey != "" && c.DiscogsSecret != ""
}
