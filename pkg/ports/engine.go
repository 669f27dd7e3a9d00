package ports

import (
	"context"

	"github.com/aretw0/tendril/pkg/domain"
)

// TurnProcessor is the engine surface used by transport adapters (HTTP, MCP, console).
type TurnProcessor interface {
	// Start creates the initial state of a session, seeded with the entry nodes.
	Start(sessionID string) *domain.DialogState

	// ProcessTurn runs one utterance against the state and returns the reply.
	ProcessTurn(ctx context.Context, utterance string, state *domain.DialogState) (string, *domain.DialogState, error)

	// Inspect returns every node of the scenario graph.
	Inspect() []domain.Node
}
