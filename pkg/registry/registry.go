package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
)

// ActionFunc is an in-process action implementation.
type ActionFunc func(ctx context.Context, node domain.Node, state *domain.DialogState) error

// Registry dispatches node actions to registered functions.
// It satisfies ports.ActionExecutor.
type Registry struct {
	mu       sync.RWMutex
	actions  map[string]ActionFunc
	fallback ports.ActionExecutor
}

// Option configures the registry.
type Option func(*Registry)

// WithFallback hands unregistered actions to another executor
// instead of failing the turn.
func WithFallback(x ports.ActionExecutor) Option {
	return func(r *Registry) {
		r.fallback = x
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		actions: make(map[string]ActionFunc),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an action. An existing action with the same name is replaced.
func (r *Registry) Register(name string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the function registered for node.Action.
func (r *Registry) Execute(ctx context.Context, node domain.Node, state *domain.DialogState) error {
	r.mu.RLock()
	fn, ok := r.actions[node.Action]
	r.mu.RUnlock()

	if !ok {
		if r.fallback != nil {
			return r.fallback.Execute(ctx, node, state)
		}
		return fmt.Errorf("action not found: %s", node.Action)
	}
	return fn(ctx, node, state)
}
