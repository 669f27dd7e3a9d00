package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/adapters/memory"
	"github.com/aretw0/tendril/pkg/adapters/process"
	"github.com/aretw0/tendril/pkg/adapters/redis"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/observability"
	"github.com/aretw0/tendril/pkg/persistence/middleware"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/aretw0/tendril/pkg/session"
)

// createEngine builds an engine with the standard CLI conventions.
// Debug mode adds lifecycle logging on top of the given hooks.
func createEngine(opts EngineOptions, logger *slog.Logger, executor ports.ActionExecutor, hooks ...domain.LifecycleHooks) (*tendril.Engine, error) {
	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	engineOpts := []tendril.Option{
		tendril.WithLogger(logger),
		tendril.WithLifecycleHooks(observability.Combine(hooks...)),
	}
	if len(opts.Scenarios) > 0 {
		engineOpts = append(engineOpts, tendril.WithScenarioFiles(opts.Scenarios...))
	}
	if opts.Slots != "" {
		engineOpts = append(engineOpts, tendril.WithSlotTable(opts.Slots))
	}
	if len(opts.Entries) > 0 {
		engineOpts = append(engineOpts, tendril.WithEntryNodes(opts.Entries...))
	}
	if executor != nil {
		engineOpts = append(engineOpts, tendril.WithActionExecutor(executor))
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	engine, err := tendril.New(dir, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing tendril: %w", err)
	}
	return engine, nil
}

// openSessions builds the session manager over the configured store.
// With a Redis address sessions are shared with other replicas and guarded
// by a Redis lock. The returned closer releases the store connection.
func openSessions(ctx context.Context, opts StoreOptions, logger *slog.Logger) (*session.Manager, func() error, error) {
	mws, err := storeMiddlewares(opts)
	if err != nil {
		return nil, nil, err
	}

	if opts.RedisAddr == "" {
		logger.Debug("Using in-memory session store")
		store := middleware.Chain(memory.NewStore(), mws...)
		return session.NewManager(store, session.WithLogger(logger)), func() error { return nil }, nil
	}

	var storeOpts []redis.Option
	if opts.SessionTTL > 0 {
		storeOpts = append(storeOpts, redis.WithTTL(opts.SessionTTL))
	}
	backend := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
	if err := backend.Ping(ctx); err != nil {
		_ = backend.Close()
		return nil, nil, fmt.Errorf("redis unreachable at %s: %w", opts.RedisAddr, err)
	}
	logger.Info("Using redis session store", "addr", opts.RedisAddr, "ttl", opts.SessionTTL, "encrypted", opts.SessionKey != "")

	manager := session.NewManager(middleware.Chain(backend, mws...),
		session.WithLocker(redis.NewLocker(backend.Client(), backend.Prefix())),
		session.WithLogger(logger),
	)
	return manager, backend.Close, nil
}

// storeMiddlewares builds the store wrappers: redaction outside, encryption inside.
func storeMiddlewares(opts StoreOptions) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(opts.Redact) > 0 {
		pii, err := middleware.NewPIIMiddleware(opts.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}
	if opts.SessionKey != "" {
		key, err := middleware.ParseKey(opts.SessionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session key: %w", err)
		}
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}

// createExecutor returns the process executor for an actions file, or an
// executor that only logs each action when none is configured.
func createExecutor(opts EngineOptions, logger *slog.Logger) (ports.ActionExecutor, error) {
	if opts.Actions == "" {
		return actionLogger(logger), nil
	}
	actions, err := process.LoadActions(opts.Actions)
	if err != nil {
		return nil, err
	}
	return process.NewExecutor(
		process.WithActions(actions),
		process.WithBaseDir(filepath.Dir(opts.Actions)),
		process.WithLogger(logger),
	), nil
}

// unboundActions lists the node actions the actions file does not register.
func unboundActions(engine *tendril.Engine, actions map[string]process.ActionConfig) []string {
	var missing []string
	for _, node := range engine.Inspect() {
		if _, ok := actions[node.Action]; node.Action != "" && !ok {
			missing = append(missing, node.ID+": "+node.Action)
		}
	}
	return missing
}

// actionLogger records each action without running anything.
func actionLogger(logger *slog.Logger) ports.ActionExecutor {
	return ports.ExecutorFunc(func(ctx context.Context, node domain.Node, state *domain.DialogState) error {
		logger.InfoContext(ctx, "Action executed", "action", node.Action, "node_id", node.ID, "session_id", state.SessionID, "slots", state.Slots)
		return nil
	})
}
