package runner

import (
	"context"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
)

// RichResponse combines the reply, the new state and what changed, for rich
// clients (HTTP, MCP).
type RichResponse struct {
	Reply    string              `json:"reply"`
	State    *domain.DialogState `json:"state"`
	Diff     *domain.StateDiff   `json:"diff,omitempty"`
	Finished bool                `json:"finished"`
}

// ProcessAndDiff runs one turn on state and reports the fields it changed.
// On error state is left as it was.
func ProcessAndDiff(ctx context.Context, engine ports.TurnProcessor, state *domain.DialogState, input string) (*RichResponse, error) {
	before := state.Clone()

	reply, next, err := engine.ProcessTurn(ctx, input, state)
	if err != nil {
		return nil, err
	}

	return &RichResponse{
		Reply:    reply,
		State:    next,
		Diff:     domain.Diff(before, next),
		Finished: Finished(next),
	}, nil
}
