/*
Package runner implements the console session loop and the input plumbing shared
by the transport adapters.

The Runner reads one utterance at a time through an IOHandler, feeds it to a
ports.TurnProcessor and writes the reply back. When a session.Manager is
configured the state is loaded and saved around every turn, so a console session
can be resumed by id.

# Key Components

  - Runner: the read, process, reply loop.
  - TextHandler: interactive "user: " / "bot: " console IO.
  - JSONHandler: JSON-Lines IO for headless use.
  - Sanitizer: the size limit, UTF-8 check and whitespace normalization applied to every
    utterance before matching, shared with the HTTP and MCP adapters.
  - ActionInterceptor: policy hooks placed in front of a ports.ActionExecutor.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID("user-1"),
		runner.WithSessions(session.NewManager(memory.NewStore())),
	)

	if _, err := r.Run(ctx, engine, nil); err != nil {
		log.Fatal(err)
	}
*/
package runner
