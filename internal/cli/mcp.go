package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/adapters/mcp"
	"github.com/aretw0/tendril/pkg/runner"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP serves the engine as MCP tools over the selected transport.
// Logs go to stderr so they never corrupt the JSON-RPC stream on stdout.
func RunMCP(opts MCPOptions) error {
	logger := serverLogger(opts.Debug)
	if err := opts.StoreOptions.ApplyEnv(); err != nil {
		return err
	}

	executor, err := createExecutor(opts.EngineOptions, logger)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts.EngineOptions, logger, executor)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	sessions, closeStore, err := openSessions(sigCtx, opts.StoreOptions, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := mcp.NewServer(engine, sessions, tendril.Version,
		mcp.WithLogger(logger),
		mcp.WithSanitizer(runner.NewSanitizer(opts.MaxInputSize)),
	)

	switch opts.Transport {
	case "", TransportStdio:
		logger.Info("Starting Tendril MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server execution failed: %w", err)
		}
	case TransportSSE:
		logger.Info("Starting Tendril MCP server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(sigCtx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp server execution failed: %w", err)
		}
		logger.Info("MCP server stopped gracefully")
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", opts.Transport, TransportStdio, TransportSSE)
	}
	return nil
}
