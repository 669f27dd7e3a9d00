package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/tendril/pkg/session"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithSessions loads and saves the session through the manager around every turn.
func WithSessions(manager *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = manager
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless selects the JSON handler when no handler is configured.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithSessionID sets the session id. It is required to resume a session through WithSessions.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithRenderer configures the content renderer (e.g. markdown).
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithIO sets the reader and writer of the default handler.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.Input = in
		r.Output = out
	}
}

// WithSanitizer sets how utterances are normalized before matching.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Runner) {
		r.Sanitizer = s
	}
}

// WithMaxInputSize sets the utterance size limit in bytes.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.Sanitizer.MaxSize = n
	}
}
