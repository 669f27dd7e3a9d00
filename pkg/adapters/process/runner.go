package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/tendril/internal/logging"
	"github.com/aretw0/tendril/pkg/domain"
)

// Environment variable names handed to every action process.
const (
	EnvSessionID  = "TENDRIL_SESSION_ID"
	EnvNodeID     = "TENDRIL_NODE_ID"
	EnvUtterance  = "TENDRIL_UTTERANCE"
	EnvSlotPrefix = "TENDRIL_SLOT_"
)

var (
	// ErrActionNotRegistered is returned for an action missing from the allow-list.
	ErrActionNotRegistered = errors.New("action not registered")
	// ErrSlotNameCollision is returned when two slot names yield the same variable.
	ErrSlotNameCollision = errors.New("slot names collide as environment variables")
)

// Executor runs node actions as local processes.
// Only registered actions run: the node names the action, never the command.
type Executor struct {
	registry map[string]ActionConfig
	baseDir  string
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures the executor.
type Option func(*Executor)

// WithActions populates the allow-list from a loaded actions file.
func WithActions(actions map[string]ActionConfig) Option {
	return func(x *Executor) {
		for name, action := range actions {
			action.Name = name
			x.registry[name] = action
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) Option {
	return func(x *Executor) {
		x.baseDir = dir
	}
}

// WithTimeout bounds each process run. Zero means no bound beyond the turn context.
func WithTimeout(d time.Duration) Option {
	return func(x *Executor) {
		x.timeout = d
	}
}

// WithLogger sets the logger receiving process output at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Executor) {
		x.logger = logger
	}
}

// NewExecutor creates a process executor.
func NewExecutor(opts ...Option) *Executor {
	x := &Executor{
		registry: make(map[string]ActionConfig),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Register adds a trusted command to the allow-list.
func (x *Executor) Register(name, command string, args ...string) {
	x.registry[name] = ActionConfig{Name: name, Command: command, Args: args}
}

// Actions returns the registered action names, sorted.
func (x *Executor) Actions() []string {
	names := make([]string, 0, len(x.registry))
	for name := range x.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the command registered for node.Action.
// The dialog state reaches the process through environment variables only,
// so user input never becomes a command argument.
func (x *Executor) Execute(ctx context.Context, node domain.Node, state *domain.DialogState) error {
	action, ok := x.registry[node.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrActionNotRegistered, node.Action)
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	env, err := environment(action, node, state)
	if err != nil {
		return fmt.Errorf("action '%s': %w", action.Name, err)
	}

	cmd := exec.CommandContext(ctx, action.Command, action.Args...)
	cmd.Dir = x.baseDir
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("action '%s' failed: %w: %s", action.Name, err, strings.TrimSpace(stderr.String()))
	}

	x.logger.DebugContext(ctx, "Action process finished",
		"action", action.Name,
		"node_id", node.ID,
		"session_id", state.SessionID,
		"duration", time.Since(start),
		"output", strings.TrimSpace(stdout.String()),
	)
	return nil
}

func environment(action ActionConfig, node domain.Node, state *domain.DialogState) ([]string, error) {
	env := make([]string, 0, len(action.Environment)+len(state.Slots)+3)
	for k, v := range action.Environment {
		env = append(env, k+"="+v)
	}
	env = append(env,
		EnvSessionID+"="+state.SessionID,
		EnvNodeID+"="+node.ID,
		EnvUtterance+"="+state.UserInput,
	)

	names := make([]string, 0, len(state.Slots))
	for name := range state.Slots {
		names = append(names, name)
	}
	sort.Strings(names)

	owners := make(map[string]string, len(names))
	for _, name := range names {
		key := EnvSlotPrefix + envName(name)
		if other, dup := owners[key]; dup {
			return nil, fmt.Errorf("%w: slots '%s' and '%s' both map to %s", ErrSlotNameCollision, other, name, key)
		}
		owners[key] = name
		env = append(env, key+"="+state.Slots[name])
	}
	return env, nil
}

// envName upper-cases ASCII letters and keeps digits and '_'. Other ASCII
// runes become '_'. Non-ASCII runes are written as '_' plus their hex code
// point, so "尺码" becomes "_5C3A_7801".
func envName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r < utf8.RuneSelf:
			b.WriteByte('_')
		default:
			fmt.Fprintf(&b, "_%X", r)
		}
	}
	return b.String()
}
