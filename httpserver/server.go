package httpserver

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/andyle182810/catalogproxy/middleware"
	"github.com/andyle182810/catalogproxy/validator"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	defaultBodyLimit = "10M"
	metricsNamespace = "catalogproxy"
	metricsSubsystem = "http"
)

var ErrServerNotRunning = errors.New("httpserver: server is not running")

type Config struct {
	Host         string
	Port         int
	BodyLimit    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GracePeriod  time.Duration
	// Registerer receives the echo request metrics. Nil disables them.
	Registerer prometheus.Registerer
	// ErrorMappers render domain errors returned by handlers.
	ErrorMappers []middleware.ErrorMapper
}

type Server struct {
	address      string
	gracePeriod  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	Echo         *echo.Echo
	Root         *echo.Group

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

func New(cfg *Config) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(e.DefaultHTTPErrorHandler, &middleware.ErrorHandlerConfig{ //nolint:exhaustruct
		Logger:    &log.Logger,
		LogErrors: true,
		Mappers:   cfg.ErrorMappers,
	})

	e.Pre(middleware.RequestIDWithConfig(middleware.RequestIDConfig{ //nolint:exhaustruct
		AutoGenerate: true,
		Logger:       &log.Logger,
	}))
	e.Pre(middleware.RequestLogger(log.Logger, QueryKeysExtractor))

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	e.Pre(echomiddleware.BodyLimit(bodyLimit))

	if cfg.Registerer != nil {
		metrics, err := echoprometheus.MiddlewareConfig{ //nolint:exhaustruct
			Namespace:                 metricsNamespace,
			Subsystem:                 metricsSubsystem,
			Registerer:                cfg.Registerer,
			DoNotUseRequestPathFor404: true,
		}.ToMiddleware()
		if err != nil {
			return nil, fmt.Errorf("httpserver: register request metrics: %w", err)
		}

		e.Use(metrics)
	}

	root := e.Group("")
	address := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return &Server{ //nolint:exhaustruct
		gracePeriod:  cfg.GracePeriod,
		address:      address,
		Echo:         e,
		Root:         root,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

// Start binds the listener before returning so address conflicts surface as start errors.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("httpserver: listen on %s: %w", s.address, err)
	}

	httpServer := &http.Server{ //nolint:exhaustruct
		Handler:      s.Echo,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.listener = listener
	s.mu.Unlock()

	log.Info().
		Str("address", listener.Addr().String()).
		Msg("The HTTP server is being started")

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped serving")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	log.Info().
		Msg("The graceful shutdown of HTTP server is being initiated")

	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to gracefully stop HTTP server")

		return fmt.Errorf("httpserver: stop: %w", err)
	}

	log.Info().
		Msg("The HTTP server shutdown has been completed successfully")

	return nil
}

func (s *Server) Name() string {
	return "http"
}

// Addr returns the bound address once started.
func (s *Server) Addr() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil, ErrServerNotRunning
	}

	return s.listener.Addr(), nil
}

// QueryKeysExtractor logs which query parameters were sent, never their values.
func QueryKeysExtractor(ctx echo.Context) map[string]any {
	fields := make(map[string]any)

	if req := ctx.Get(middleware.ContextKeyRequest); req != nil {
		fields["request_type"] = fmt.Sprintf("%T", req)
	}

	query := ctx.QueryParams()
	if len(query) == 0 {
		return fields
	}

	fields["query_keys"] = slices.Sorted(maps.Keys(query))

	return fields
}
