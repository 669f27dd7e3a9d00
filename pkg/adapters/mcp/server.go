package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tendril/internal/logging"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/aretw0/tendril/pkg/session"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// GraphURI is the resource exposing the scenario graph.
const GraphURI = "tendril://graph"

// SessionArgs identifies a session. An empty id on start_session gets a generated one.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// TurnArgs are the arguments of process_turn.
type TurnArgs struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// SessionResponse is returned by start_session and get_session.
type SessionResponse struct {
	State   *domain.DialogState `json:"state" jsonschema_description:"The current dialog state"`
	Resumed bool                `json:"resumed" jsonschema_description:"True if the session already existed"`
}

// Server wraps the Tendril engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.TurnProcessor
	sessions  *session.Manager
	logger    *slog.Logger
	sanitizer runner.Sanitizer
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to Stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSanitizer sets how turn inputs are normalized, e.g. their size limit.
func WithSanitizer(sanitizer runner.Sanitizer) Option {
	return func(s *Server) {
		s.sanitizer = sanitizer
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.TurnProcessor, sessions *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("tendril-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a dialog session, or return it unchanged if it already exists."),
		mcp.WithString("session_id", mcp.Description("Session id (optional, generated when omitted)")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the current state of a dialog session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetSession))

	s.mcpServer.AddTool(mcp.NewTool("process_turn",
		mcp.WithDescription("Send one user utterance to a session and get the bot reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithString("input", mcp.Required(), mcp.Description("User utterance")),
		mcp.WithOutputSchema[runner.RichResponse](),
	), mcp.NewStructuredToolHandler(s.handleProcessTurn))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full scenario graph for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	id := args.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	state, loaded, err := s.sessions.LoadOrStart(ctx, id, s.engine.Start)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("start session failed: %w", err)
	}
	return SessionResponse{State: state, Resumed: loaded}, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	state, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("get session failed: %w", err)
	}
	return SessionResponse{State: state, Resumed: true}, nil
}

func (s *Server) handleProcessTurn(ctx context.Context, request mcp.CallToolRequest, args TurnArgs) (runner.RichResponse, error) {
	clean, err := s.sanitizer.Sanitize(args.Input)
	if err != nil {
		s.logger.Warn("MCP ProcessTurn: Input rejected", "err", err, "size", len(args.Input))
		return runner.RichResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	var rich *runner.RichResponse
	_, err = s.sessions.Turn(ctx, args.SessionID, func(ctx context.Context, state *domain.DialogState) error {
		var err error
		rich, err = runner.ProcessAndDiff(ctx, s.engine, state, clean)
		return err
	})
	if err != nil {
		s.logger.Debug("MCP ProcessTurn: Turn failed", "session_id", args.SessionID, "err", err)
		return runner.RichResponse{}, fmt.Errorf("process turn failed: %w", err)
	}
	return *rich, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Current Scenario Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to inspect graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
