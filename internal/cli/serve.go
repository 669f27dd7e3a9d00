package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/tendril"
	tendrilhttp "github.com/aretw0/tendril/pkg/adapters/http"
	"github.com/aretw0/tendril/pkg/observability"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds the graceful shutdown of the HTTP server.
const DefaultShutdownTimeout = 5 * time.Second

// NewServeHandler builds the HTTP API handler with its own metrics registry.
// The returned closer releases the session store.
func NewServeHandler(ctx context.Context, opts ServeOptions, logger *slog.Logger) (http.Handler, func() error, error) {
	if err := opts.StoreOptions.ApplyEnv(); err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	executor, err := createExecutor(opts.EngineOptions, logger)
	if err != nil {
		return nil, nil, err
	}
	engine, err := createEngine(opts.EngineOptions, logger, executor, metrics.Hooks())
	if err != nil {
		return nil, nil, err
	}

	sessions, closeStore, err := openSessions(ctx, opts.StoreOptions, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := tendrilhttp.NewHandler(engine, sessions,
		tendrilhttp.WithLogger(logger),
		tendrilhttp.WithMetrics(metrics, reg),
		tendrilhttp.WithVersion(tendril.Version),
		tendrilhttp.WithSanitizer(runner.NewSanitizer(opts.MaxInputSize)),
	)
	return handler, closeStore, nil
}

// Serve runs the HTTP API until SIGINT/SIGTERM, then shuts down gracefully.
func Serve(opts ServeOptions) error {
	logger := serverLogger(opts.Debug)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	handler, closeStore, err := NewServeHandler(sigCtx, opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(opts.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return sigCtx },
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	g, ctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		logger.Info("Starting Tendril HTTP server", "addr", srv.Addr, "version", tendril.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...", "signal", sigCtx.Signal())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exited properly")
	return nil
}
