package runner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyle182810/catalogproxy/runner"
	"github.com/andyle182810/catalogproxy/testutil"
	"github.com/stretchr/testify/require"
)

var errStart = errors.New("start error")

var errStop = errors.New("stop error")

type mockService struct {
	name         string
	startErr     error
	stopErr      error
	stopDelay    time.Duration
	panicOnStart bool
	started      atomic.Bool
	stopped      atomic.Bool
}

func newMockService(name string) *mockService {
	return &mockService{
		name:         name,
		startErr:     nil,
		stopErr:      nil,
		stopDelay:    0,
		panicOnStart: false,
		started:      atomic.Bool{},
		stopped:      atomic.Bool{},
	}
}

func (m *mockService) Start(_ context.Context) error {
	if m.panicOnStart {
		panic("mock panic on start")
	}

	if m.startErr != nil {
		return m.startErr
	}

	m.started.Store(true)

	return nil
}

func (m *mockService) Stop() error {
	if m.stopDelay > 0 {
		time.Sleep(m.stopDelay)
	}

	if m.stopErr != nil {
		return m.stopErr
	}

	m.stopped.Store(true)

	return nil
}

func (m *mockService) Name() string {
	return m.name
}

// runUntilCancelled cancels the run once every given service has started.
func runUntilCancelled(t *testing.T, r *runner.Runner, services ...*mockService) error {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)

	go func() {
		done <- r.RunContext(ctx)
	}()

	testutil.Eventually(t, 5*time.Second, func() bool {
		for _, svc := range services {
			if !svc.started.Load() {
				return false
			}
		}

		return true
	})
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not return after cancellation")

		return nil
	}
}

func TestNew_DefaultShutdownTimeout(t *testing.T) {
	t.Parallel()

	r := runner.New()
	require.NotNil(t, r)
	require.Equal(t, 30*time.Second, r.ShutdownTimeout())
}

func TestNew_WithShutdownTimeout(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5*time.Second, runner.New(runner.WithShutdownTimeout(5*time.Second)).ShutdownTimeout())
	require.Equal(t, 30*time.Second, runner.New(runner.WithShutdownTimeout(0)).ShutdownTimeout())
}

func TestRunContext_StartsAndStopsAllServices(t *testing.T) {
	t.Parallel()

	core := newMockService("http")
	infra := newMockService("metric")

	r := runner.New(
		runner.WithCoreService(core),
		runner.WithInfrastructureService(infra),
	)

	err := runUntilCancelled(t, r, core, infra)
	require.NoError(t, err)

	require.True(t, core.started.Load())
	require.True(t, infra.started.Load())
	require.True(t, core.stopped.Load())
	require.True(t, infra.stopped.Load())
}

func TestRunContext_NoServices(t *testing.T) {
	t.Parallel()

	require.NoError(t, runUntilCancelled(t, runner.New()))
}

func TestRunContext_CoreStartFailure(t *testing.T) {
	t.Parallel()

	core := newMockService("http")
	core.startErr = errStart
	infra := newMockService("metric")

	r := runner.New(
		runner.WithCoreService(core),
		runner.WithInfrastructureService(infra),
	)

	err := r.RunContext(t.Context())
	require.Error(t, err)
	require.ErrorIs(t, err, runner.ErrServiceFailed)
	require.ErrorIs(t, err, errStart)
	require.Contains(t, err.Error(), "http")

	require.True(t, infra.started.Load())
	require.True(t, infra.stopped.Load(), "infrastructure must be stopped when core fails")
}

func TestRunContext_InfrastructureStartFailureSkipsCore(t *testing.T) {
	t.Parallel()

	core := newMockService("http")
	infra := newMockService("metric")
	infra.startErr = errStart

	r := runner.New(
		runner.WithCoreService(core),
		runner.WithInfrastructureService(infra),
	)

	err := r.RunContext(t.Context())
	require.ErrorIs(t, err, runner.ErrServiceFailed)
	require.False(t, core.started.Load())
}

func TestRunContext_PanicOnStart(t *testing.T) {
	t.Parallel()

	core := newMockService("panicky")
	core.panicOnStart = true

	err := runner.New(runner.WithCoreService(core)).RunContext(t.Context())
	require.ErrorIs(t, err, runner.ErrServicePanic)
	require.Contains(t, err.Error(), "mock panic on start")
}

func TestRunContext_StopErrorIsReturned(t *testing.T) {
	t.Parallel()

	core := newMockService("http")
	core.stopErr = errStop

	err := runUntilCancelled(t, runner.New(runner.WithCoreService(core)), core)
	require.ErrorIs(t, err, errStop)
}

func TestRunContext_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	core := newMockService("slow")
	core.stopDelay = 500 * time.Millisecond

	r := runner.New(
		runner.WithCoreService(core),
		runner.WithShutdownTimeout(20*time.Millisecond),
	)

	err := runUntilCancelled(t, r, core)
	require.ErrorIs(t, err, runner.ErrShutdownTimeout)
}

func TestRunContext_ConcurrentStop(t *testing.T) {
	t.Parallel()

	services := make([]*mockService, 0, 3)
	opts := make([]runner.Option, 0, 3)

	for _, name := range []string{"a", "b", "c"} {
		svc := newMockService(name)
		svc.stopDelay = 100 * time.Millisecond
		services = append(services, svc)
		opts = append(opts, runner.WithCoreService(svc))
	}

	opts = append(opts, runner.WithShutdownTimeout(250*time.Millisecond))

	require.NoError(t, runUntilCancelled(t, runner.New(opts...), services...))

	for _, svc := range services {
		require.True(t, svc.stopped.Load(), svc.name)
	}
}
