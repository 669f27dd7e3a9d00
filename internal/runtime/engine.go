package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/aretw0/tendril/pkg/scenario"
)

// Engine runs the dialog pipeline over a shared, read-only scenario.
// An Engine is safe for concurrent use across sessions; turns of the same
// DialogState must not run concurrently.
type Engine struct {
	graph    *scenario.Graph
	registry *scenario.Registry
	renderer *Renderer
	executor ports.ActionExecutor
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSubstituter swaps the response template strategy.
func WithSubstituter(s Substituter) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.renderer.Substituter = s
		}
	}
}

// WithActionExecutor sets the executor run for answering nodes that declare an action.
func WithActionExecutor(x ports.ActionExecutor) EngineOption {
	return func(e *Engine) {
		if x != nil {
			e.executor = x
		}
	}
}

// NewEngine creates a new engine with dependencies.
func NewEngine(graph *scenario.Graph, registry *scenario.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:    graph,
		registry: registry,
		renderer: &Renderer{Registry: registry, Substituter: LiteralSubstituter{}},
		executor: ports.NopExecutor{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the scenario graph served by the engine.
func (e *Engine) Graph() *scenario.Graph {
	return e.graph
}

// Registry returns the slot registry served by the engine.
func (e *Engine) Registry() *scenario.Registry {
	return e.registry
}

// ProcessTurn runs one utterance through the pipeline: match intent, extract
// slots, track the missing slot, decide, render.
//
// The turn is applied to a copy of state and committed into state only when
// every step succeeded, so a failed turn leaves the session untouched.
// The returned pointer is state itself.
func (e *Engine) ProcessTurn(ctx context.Context, utterance string, state *domain.DialogState) (string, *domain.DialogState, error) {
	if state == nil {
		return "", nil, fmt.Errorf("dialog state is required")
	}
	started := time.Now()

	next := state.Clone()
	if next.Slots == nil {
		next.Slots = make(map[string]string)
	}
	next.UserInput = utterance

	// 1. Intent
	hit, score, err := Match(e.graph, utterance, next.AvailableNodes)
	if err != nil {
		return "", state, fmt.Errorf("session '%s' turn %d: %w", state.SessionID, state.Turn+1, err)
	}
	next.HitIntent = hit.ID
	next.HitIntentScore = score

	// 2. Slots
	values, err := Extract(utterance, hit.Slots, e.registry)
	if err != nil {
		return "", state, e.referenceError(err, hit.ID)
	}
	var filled []string
	for _, slot := range hit.Slots {
		if value, ok := values[slot]; ok {
			next.Slots[slot] = value
			filled = append(filled, slot)
		}
	}

	// 3. State tracking
	next.NeedSlot = FirstMissingSlot(hit, next.Slots)

	// 4. Policy
	next.Action, next.AvailableNodes = Decide(next.NeedSlot, hit)
	if next.Action == domain.ActionAnswer && hit.Action != "" {
		if err := e.executor.Execute(ctx, hit, next); err != nil {
			return "", state, fmt.Errorf("action '%s' of node '%s' failed: %w", hit.Action, hit.ID, err)
		}
	}

	// 5. Response
	text, err := e.renderer.Render(next.Action, next.NeedSlot, hit, next.Slots)
	if err != nil {
		return "", state, e.referenceError(err, hit.ID)
	}
	next.Response = text
	next.Turn++
	next.History = append(next.History, hit.ID)

	*state = *next

	// Events describe committed turns only.
	e.emitIntent(ctx, state, hit.ID, score)
	for _, slot := range filled {
		e.emitSlot(ctx, state, hit.ID, slot, state.Slots[slot])
	}

	e.logger.Debug("Turn processed",
		"session_id", state.SessionID,
		"turn", state.Turn,
		"hit_intent", state.HitIntent,
		"score", state.HitIntentScore,
		"action", state.Action,
		"need_slot", state.NeedSlot,
	)
	e.emitTurn(ctx, state, time.Since(started))

	return text, state, nil
}

// referenceError attaches the node being processed to unresolved slot references.
func (e *Engine) referenceError(err error, nodeID string) error {
	if ref, ok := err.(*domain.UnresolvedReferenceError); ok && ref.Referrer == "" {
		return &domain.UnresolvedReferenceError{Kind: ref.Kind, ID: ref.ID, Referrer: nodeID}
	}
	return err
}

func (e *Engine) emitIntent(ctx context.Context, state *domain.DialogState, nodeID string, score float64) {
	if e.hooks.OnIntentMatched == nil {
		return
	}
	e.hooks.OnIntentMatched(ctx, &domain.IntentEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventIntentMatched, SessionID: state.SessionID},
		NodeID:    nodeID,
		Score:     score,
	})
}

func (e *Engine) emitSlot(ctx context.Context, state *domain.DialogState, nodeID, slot, value string) {
	if e.hooks.OnSlotFilled == nil {
		return
	}
	e.hooks.OnSlotFilled(ctx, &domain.SlotEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSlotFilled, SessionID: state.SessionID},
		NodeID:    nodeID,
		Slot:      slot,
		Value:     value,
	})
}

func (e *Engine) emitTurn(ctx context.Context, state *domain.DialogState, elapsed time.Duration) {
	if e.hooks.OnTurnComplete == nil {
		return
	}
	e.hooks.OnTurnComplete(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTurnComplete, SessionID: state.SessionID},
		NodeID:    state.HitIntent,
		Action:    state.Action,
		NeedSlot:  state.NeedSlot,
		Duration:  elapsed,
	})
}
