package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tendril/internal/logging"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/aretw0/tendril/pkg/session"
)

// DefaultSessionID names console sessions started without an id.
const DefaultSessionID = "console"

// EndMessage is shown when no further utterance can match.
const EndMessage = "The conversation has ended."

// Runner drives a dialog session: read an utterance, process the turn, print the reply.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler (or a JSONHandler
	// when Headless) is built over Input and Output.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Sessions persists the state around each turn. If nil, the session is ephemeral.
	Sessions  *session.Manager
	SessionID string

	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// Sanitizer normalizes every utterance read from the handler.
	Sanitizer Sanitizer
}

// NewRunner creates a Runner reading Stdin and writing Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop until the user exits, the input ends, ctx is done or
// the dialog reaches a node without follow-ups.
// If initial is nil the state is resumed from Sessions or created with engine.Start.
// It returns the last committed state.
func (r *Runner) Run(ctx context.Context, engine ports.TurnProcessor, initial *domain.DialogState) (*domain.DialogState, error) {
	handler := r.resolveHandler()

	state, err := r.resolveInitialState(ctx, engine, initial)
	if err != nil {
		return nil, err
	}

	for {
		raw, err := handler.Input(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return state, nil
			case ctx.Err() != nil:
				r.Logger.Debug("Runner input: context cancelled", "err", ctx.Err())
				return state, nil
			}
			return state, fmt.Errorf("input error: %w", err)
		}

		input, err := r.Sanitizer.Sanitize(raw)
		if err != nil {
			r.Logger.Warn("Input rejected", "err", err, "size", len(raw))
			if err := handler.SystemOutput(ctx, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
				return state, err
			}
			continue
		}
		if input == "exit" || input == "quit" {
			return state, nil
		}

		reply, next, err := r.turn(ctx, engine, state, input)
		if err != nil {
			if errors.Is(err, domain.ErrNoReachableIntent) {
				_ = handler.SystemOutput(ctx, EndMessage)
				return state, nil
			}
			if errors.Is(err, domain.ErrUnresolvedReference) {
				return state, err
			}
			r.Logger.Warn("Turn failed", "session_id", state.SessionID, "err", err)
			if err := handler.SystemOutput(ctx, fmt.Sprintf("Error: %v", err)); err != nil {
				return state, err
			}
			continue
		}
		state = next

		out := NewReply(reply, state)
		if err := handler.Output(ctx, out); err != nil {
			return state, fmt.Errorf("output error: %w", err)
		}
		if out.Finished {
			_ = handler.SystemOutput(ctx, EndMessage)
			return state, nil
		}
	}
}

// turn runs one utterance, through the session manager when configured.
func (r *Runner) turn(ctx context.Context, engine ports.TurnProcessor, state *domain.DialogState, input string) (string, *domain.DialogState, error) {
	if r.Sessions == nil {
		return engine.ProcessTurn(ctx, input, state)
	}

	var reply string
	next, err := r.Sessions.Turn(ctx, state.SessionID, func(ctx context.Context, s *domain.DialogState) error {
		var err error
		reply, _, err = engine.ProcessTurn(ctx, input, s)
		return err
	})
	if err != nil {
		return "", state, err
	}
	r.Logger.Debug("state saved", "session_id", next.SessionID, "turn", next.Turn)
	return reply, next, nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	if r.Headless {
		r.Handler = NewJSONHandler(r.Input, r.Output)
	} else {
		r.Handler = NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
	}
	return r.Handler
}

func (r *Runner) resolveInitialState(ctx context.Context, engine ports.TurnProcessor, initial *domain.DialogState) (*domain.DialogState, error) {
	if initial != nil {
		if r.Sessions != nil {
			if err := r.Sessions.Save(ctx, initial.SessionID, initial); err != nil {
				return nil, fmt.Errorf("failed to save initial state: %w", err)
			}
		}
		return initial, nil
	}

	id := r.SessionID
	if id == "" {
		id = DefaultSessionID
	}
	if r.Sessions == nil {
		return engine.Start(id), nil
	}

	state, loaded, err := r.Sessions.LoadOrStart(ctx, id, engine.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial state: %w", err)
	}
	if loaded {
		r.Logger.Info("Session resumed", "session_id", id, "turn", state.Turn)
	}
	return state, nil
}
