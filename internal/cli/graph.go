package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tendril/internal/presentation/graph"
)

// Graph writes the Mermaid flowchart of the scenario.
// With a session id the session's position is overlaid on the chart.
func Graph(ctx context.Context, opts EngineOptions, store StoreOptions, sessionID string, out io.Writer) error {
	logger := createLogger(opts.Debug)
	engine, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if sessionID != "" {
		if err := store.ApplyEnv(); err != nil {
			return err
		}
		sessions, closeStore, err := openSessions(ctx, store, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		state, err := sessions.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session '%s': %w", sessionID, err)
		}
		overlay = graph.OverlayFromState(state)
	}

	_, err = fmt.Fprint(out, graph.GenerateMermaid(engine.Inspect(), engine.Entries(), overlay))
	return err
}
