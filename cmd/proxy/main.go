package main

import (
	"fmt"
	"os"

	"github.com/andyle182810/catalogproxy/httpclient"
	"github.com/andyle182810/catalogproxy/httpserver"
	"github.com/andyle182810/catalogproxy/internal/config"
	"github.com/andyle182810/catalogproxy/internal/service"
	"github.com/andyle182810/catalogproxy/logutil"
	"github.com/andyle182810/catalogproxy/metricserver"
	"github.com/andyle182810/catalogproxy/middleware"
	"github.com/andyle182810/catalogproxy/proxy"
	"github.com/andyle182810/catalogproxy/runner"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	clientCatalog = "catalog"
	clientStorage = "storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application exited with an error")
	}

	log.Info().Msg("Application shutdown complete")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Logger = logutil.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))

	if !cfg.HasCatalogCredentials() {
		log.Warn().Msg("DISCOGS_KEY or DISCOGS_SECRET is not set, catalog calls will be unauthenticated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct
	)

	app := &application{
		cfg:      cfg,
		registry: registry,
		clients:  newClientRegistry(cfg),
	}

	httpServer, err := app.newHTTPServer()
	if err != nil {
		return err
	}

	opts := []runner.Option{
		runner.WithCoreService(httpServer),
		runner.WithShutdownTimeout(cfg.GracefulShutdownPeriod),
	}

	if cfg.MetricServerEnabled {
		opts = append(opts, runner.WithInfrastructureService(app.newMetricServer()))
	}

	runner.New(opts...).Run()

	return nil
}

type application struct {
	cfg      *config.Config
	registry *prometheus.Registry
	clients  *httpclient.Registry
}

func newClientRegistry(cfg *config.Config) *httpclient.Registry {
	return httpclient.NewRegistry(
		httpclient.WithTimeout(cfg.UpstreamTimeout),
		httpclient.WithMaxResponseSize(cfg.UpstreamMaxResponseBytes()),
		httpclient.WithLogger(log.Logger),
	).
		Register(clientCatalog).
		Register(clientStorage)
}

func (app *application) newService() *service.Service {
	metrics := proxy.NewMetrics(app.registry)

	catalog := proxy.NewCatalogTranslator(proxy.CatalogConfig{
		BaseURL:    app.cfg.CatalogBaseURL,
		AuthScheme: app.cfg.CatalogAuthScheme,
		UserAgent:  app.cfg.CatalogUserAgent,
		Credentials: proxy.Credentials{
			Key:    app.cfg.DiscogsKey,
			Secret: app.cfg.DiscogsSecret,
		},
	}, app.clients.MustClient(clientCatalog), proxy.WithMetrics(metrics))

	assets := proxy.NewAssetTranslator(app.clients.MustClient(clientStorage), proxy.WithMetrics(metrics))

	return service.New(catalog, assets)
}

func (app *application) newHTTPServer() (*httpserver.Server, error) {
	httpCfg := &httpserver.Config{
		Host:         app.cfg.HTTPServerHost,
		Port:         app.cfg.HTTPServerPort,
		BodyLimit:    app.cfg.HTTPBodyLimit,
		ReadTimeout:  app.cfg.HTTPServerReadTimeout,
		WriteTimeout: app.cfg.HTTPServerWriteTimeout,
		GracePeriod:  app.cfg.GracefulShutdownPeriod,
		Registerer:   app.registry,
		ErrorMappers: []middleware.ErrorMapper{service.MapProxyError},
	}

	svr, err := httpserver.New(httpCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http server: %w", err)
	}

	app.newService().RegisterRoutes(svr.Root, service.Routes{
		CatalogPath: app.cfg.CatalogProxyPath,
		StoragePath: app.cfg.StorageProxyPath,
	})

	log.Info().
		Str("catalog_path", app.cfg.CatalogProxyPath).
		Str("storage_path", app.cfg.StorageProxyPath).
		Str("catalog_base_url", app.cfg.CatalogBaseURL).
		Msg("Proxy routes registered")

	return svr, nil
}

func (app *application) newMetricServer() *metricserver.Server {
	metricCfg := &metricserver.Config{
		Host:         app.cfg.MetricServerHost,
		Port:         app.cfg.MetricServerPort,
		ReadTimeout:  app.cfg.MetricServerReadTimeout,
		WriteTimeout: app.cfg.MetricServerWriteTimeout,
		GracePeriod:  app.cfg.GracefulShutdownPeriod,
		Gatherer:     app.registry,
	}

	return metricserver.New(metricCfg)
}
