package tendril

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/tendril/internal/logging"
	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/aretw0/tendril/pkg/scenario"
)

// Engine is the high-level entry point for the Tendril library.
// It wraps the internal runtime and provides a simplified API for consumers.
// An Engine is safe for concurrent use as long as each DialogState is used by one turn at a time.
type Engine struct {
	runtime *runtime.Engine

	graph         *scenario.Graph
	registry      *scenario.Registry
	slotTable     string
	scenarioFiles []string
	entries       []string

	substituter Substituter
	executor    ports.ActionExecutor
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Substituter fills slot values into response templates.
type Substituter = runtime.Substituter

// LiteralSubstituter replaces bare slot names. It is the default.
type LiteralSubstituter = runtime.LiteralSubstituter

// DelimitedSubstituter replaces only delimited slot names such as "{size}".
type DelimitedSubstituter = runtime.DelimitedSubstituter

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithScenarioFiles loads the given scenario files instead of discovering them.
func WithScenarioFiles(paths ...string) Option {
	return func(e *Engine) {
		e.scenarioFiles = append(e.scenarioFiles, paths...)
	}
}

// WithSlotTable sets the slot table used with WithScenarioFiles.
func WithSlotTable(path string) Option {
	return func(e *Engine) {
		e.slotTable = path
	}
}

// WithGraph injects an already built graph, bypassing file loading.
// It must be combined with WithRegistry.
func WithGraph(g *scenario.Graph) Option {
	return func(e *Engine) {
		e.graph = g
	}
}

// WithRegistry injects an already built slot registry.
func WithRegistry(r *scenario.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithEntryNodes overrides the nodes new sessions can match on their first turn.
// By default these are the first node of every scenario.
func WithEntryNodes(ids ...string) Option {
	return func(e *Engine) {
		e.entries = append(e.entries, ids...)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSubstituter swaps the response template substitution strategy.
func WithSubstituter(s Substituter) Option {
	return func(e *Engine) {
		e.substituter = s
	}
}

// WithActionExecutor sets the executor of node actions.
func WithActionExecutor(x ports.ActionExecutor) Option {
	return func(e *Engine) {
		e.executor = x
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Tendril Engine.
// By default, it discovers the slot table and scenario files in dir.
// If WithGraph/WithRegistry or WithScenarioFiles are provided, dir is only used as a label.
// The loaded scenario is validated before the engine is returned.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.load(dir); err != nil {
		return nil, err
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("scenario", eng.Name)
	}

	if len(eng.entries) == 0 {
		eng.entries = eng.graph.Entries()
	}
	for _, id := range eng.entries {
		if !eng.graph.Has(id) {
			return nil, &domain.UnresolvedReferenceError{Kind: domain.RefNode, ID: id, Referrer: "entry"}
		}
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	if eng.substituter != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithSubstituter(eng.substituter))
	}
	if eng.executor != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithActionExecutor(eng.executor))
	}
	eng.runtime = runtime.NewEngine(eng.graph, eng.registry, runtimeOpts...)

	return eng, nil
}

func (e *Engine) load(dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
		e.Name = filepath.Base(abs)
	}

	switch {
	case e.graph != nil || e.registry != nil:
		if e.graph == nil || e.registry == nil {
			return fmt.Errorf("WithGraph and WithRegistry must be used together")
		}
		if err := scenario.Validate(e.graph, e.registry); err != nil {
			return fmt.Errorf("scenario integrity check failed:\n%w", err)
		}
		return nil
	case len(e.scenarioFiles) > 0:
		if e.slotTable == "" {
			return fmt.Errorf("a slot table is required with explicit scenario files")
		}
		g, r, err := scenario.Load(e.slotTable, e.scenarioFiles...)
		if err != nil {
			return err
		}
		e.graph, e.registry = g, r
		return nil
	case dir != "":
		g, r, err := scenario.LoadDir(dir)
		if err != nil {
			return err
		}
		e.graph, e.registry = g, r
		return nil
	}
	return fmt.Errorf("dir is required when no scenario files or graph are provided")
}

// Start creates the initial state of a session, seeded with the entry nodes.
func (e *Engine) Start(sessionID string) *domain.DialogState {
	return domain.NewState(sessionID, e.entries...)
}

// ProcessTurn runs one utterance against state and returns the reply.
// On error state is left unchanged.
func (e *Engine) ProcessTurn(ctx context.Context, utterance string, state *domain.DialogState) (string, *domain.DialogState, error) {
	return e.runtime.ProcessTurn(ctx, utterance, state)
}

// Inspect returns the full graph definition for visualization or introspection tools.
func (e *Engine) Inspect() []domain.Node {
	return e.graph.Nodes()
}

// Graph returns the scenario graph.
func (e *Engine) Graph() *scenario.Graph {
	return e.graph
}

// Registry returns the slot registry.
func (e *Engine) Registry() *scenario.Registry {
	return e.registry
}

// Entries returns the node ids new sessions start with.
func (e *Engine) Entries() []string {
	out := make([]string, len(e.entries))
	copy(out, e.entries)
	return out
}

var _ ports.TurnProcessor = (*Engine)(nil)
