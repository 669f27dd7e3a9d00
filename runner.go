package tendril

import (
	"context"
	"io"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/runner"
)

// Run drives a console dialog over in and out until the input ends, the user
// types "exit" or "quit", or the scenario has nothing left to match.
// The session is ephemeral. Use pkg/runner with a session.Manager to persist it.
func (e *Engine) Run(ctx context.Context, sessionID string, in io.Reader, out io.Writer) (*domain.DialogState, error) {
	r := runner.NewRunner(
		runner.WithIO(in, out),
		runner.WithSessionID(sessionID),
		runner.WithLogger(e.logger),
	)
	return r.Run(ctx, e, nil)
}
