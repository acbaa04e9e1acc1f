package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	ErrServicePanic    = errors.New("runner: service panicked")
	ErrServiceFailed   = errors.New("runner: service failed to start")
	ErrShutdownTimeout = errors.New("runner: shutdown timeout exceeded")
)

// Service is started once and stopped once. Start must return after the service is ready;
// long-running work belongs in goroutines owned by the service.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

type Runner struct {
	coreServices           []Service
	infrastructureServices []Service
	shutdownTimeout        time.Duration
}

type Option func(*Runner)

func New(opts ...Option) *Runner {
	runner := &Runner{
		coreServices:           make([]Service, 0),
		infrastructureServices: make([]Service, 0),
		shutdownTimeout:        defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

func WithCoreService(svc Service) Option {
	return func(r *Runner) {
		r.coreServices = append(r.coreServices, svc)
		log.Info().
			Str("service_type", "core").
			Str("service_name", svc.Name()).
			Msg("Core service registered")
	}
}

func WithInfrastructureService(svc Service) Option {
	return func(r *Runner) {
		r.infrastructureServices = append(r.infrastructureServices, svc)
		log.Info().
			Str("service_type", "infrastructure").
			Str("service_name", svc.Name()).
			Msg("Infrastructure service registered")
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.shutdownTimeout = d
		}
	}
}

func (r *Runner) ShutdownTimeout() time.Duration {
	return r.shutdownTimeout
}

// Run blocks until SIGINT or SIGTERM and exits the process when a service fails.
func (r *Runner) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.RunContext(ctx); err != nil {
		log.Error().Err(err).Msg("The runner has terminated with an error")
		os.Exit(1)
	}
}

// RunContext starts infrastructure services, then core services, and blocks until ctx is done.
// Every started service is stopped before it returns.
func (r *Runner) RunContext(ctx context.Context) error {
	log.Info().Msg("Starting infrastructure services")

	if err := r.startServices(ctx, r.infrastructureServices); err != nil {
		log.Error().Err(err).Msg("Infrastructure services failed to start")

		return errors.Join(err, r.shutdownWithTimeout(r.infrastructureServices))
	}

	log.Info().Msg("Starting core services")

	if err := r.startServices(ctx, r.coreServices); err != nil {
		log.Error().Err(err).Msg("Core services failed to start")

		return errors.Join(
			err,
			r.shutdownWithTimeout(r.coreServices),
			r.shutdownWithTimeout(r.infrastructureServices),
		)
	}

	log.Info().
		Int("pid", os.Getpid()).
		Int("core_services", len(r.coreServices)).
		Int("infra_services", len(r.infrastructureServices)).
		Msg("All services started, waiting for shutdown signal")

	<-ctx.Done()
	log.Warn().Msg("Shutdown signal received")

	err := errors.Join(
		r.shutdownWithTimeout(r.coreServices),
		r.shutdownWithTimeout(r.infrastructureServices),
	)

	log.Info().Msg("Graceful shutdown completed")

	return err
}

func (r *Runner) startServices(ctx context.Context, services []Service) error {
	if len(services) == 0 {
		return nil
	}

	errCh := make(chan error, len(services))

	var wg sync.WaitGroup

	for _, svc := range services {
		wg.Add(1)

		go func(service Service) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					errCh <- fmt.Errorf("%w: %s: %v", ErrServicePanic, service.Name(), rec)
				}
			}()

			log.Info().Str("service_name", service.Name()).Msg("Starting service")

			if err := service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("%w: %s: %w", ErrServiceFailed, service.Name(), err)
			}
		}(svc)
	}

	wg.Wait()
	close(errCh)

	errs := make([]error, 0, len(services))
	for err := range errCh {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (r *Runner) shutdownWithTimeout(services []Service) error {
	if len(services) == 0 {
		return nil
	}

	done := make(chan error, 1)

	go func() {
		done <- r.concurrentStop(services)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.shutdownTimeout):
		log.Error().
			Dur("timeout", r.shutdownTimeout).
			Msg("Shutdown timeout exceeded, some services may not have stopped cleanly")

		return fmt.Errorf("%w: %s", ErrShutdownTimeout, r.shutdownTimeout)
	}
}

func (r *Runner) concurrentStop(services []Service) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, svc := range services {
		wg.Add(1)

		go func(service Service) {
			defer wg.Done()

			log.Info().Str("service_name", service.Name()).Msg("Stopping service")

			if err := service.Stop(); err != nil {
				log.Error().
					Err(err).
					Str("service_name", service.Name()).
					Msg("Service failed to stop")

				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", service.Name(), err))
				mu.Unlock()

				return
			}

			log.Info().
				Str("service_name", service.Name()).
				Msg("Service stopped")
		}(svc)
	}

	wg.Wait()

	return errors.Join(errs...)
}
