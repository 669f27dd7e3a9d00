package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/presentation/tui"
	"github.com/aretw0/tendril/pkg/adapters/process"
	"github.com/aretw0/tendril/pkg/runner"
	"golang.org/x/term"
)

// RunSession executes a single console session until the user exits,
// the input ends or the dialog has nothing left to match.
func RunSession(opts RunOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(opts.Debug)
	if err := opts.StoreOptions.ApplyEnv(); err != nil {
		return err
	}

	structured := opts.JSON || opts.Headless
	if !structured && isTerminal(out) {
		tui.PrintBanner(out)
	}

	var handler runner.IOHandler
	if structured {
		handler = runner.NewJSONHandler(in, out)
	} else {
		var textOpts []runner.TextHandlerOption
		if opts.Rich {
			textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		handler = runner.NewTextHandler(in, out, textOpts...)
	}

	executor, err := createExecutor(opts.EngineOptions, logger)
	if err != nil {
		return err
	}
	if opts.Confirm {
		executor = runner.Intercept(runner.ConfirmationMiddleware(handler), executor)
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

	r := runner.NewRunner(
		runner.WithIO(in, out),
		runner.WithInputHandler(handler),
		runner.WithSessions(sessions),
		runner.WithSessionID(opts.SessionID),
		runner.WithLogger(logger),
		runner.WithHeadless(structured),
		runner.WithMaxInputSize(opts.MaxInputSize),
	)

	finalState, runErr := r.Run(sigCtx, engine, nil)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	if !structured && finalState != nil {
		logCompletion(out, finalState.SessionID, finalState.Turn, runErr, sigCtx.Signal())
	}

	return handleExecutionError(runErr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Validate loads the scenario and reports every integrity defect.
// With an actions file it also checks that every node action is registered.
func Validate(opts EngineOptions, out io.Writer) error {
	logger := createLogger(opts.Debug)
	engine, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}
	if opts.Actions != "" {
		actions, err := process.LoadActions(opts.Actions)
		if err != nil {
			return err
		}
		if missing := unboundActions(engine, actions); len(missing) > 0 {
			return fmt.Errorf("actions missing from %s: %v", opts.Actions, missing)
		}
	}
	fmt.Fprintf(out, "Scenario '%s' is valid: %d node(s), %d slot(s), entries %v\n",
		engine.Name, engine.Graph().Len(), len(engine.Registry().Names()), engine.Entries())
	return nil
}

// Version returns the module version.
func Version() string {
	return tendril.Version
}
