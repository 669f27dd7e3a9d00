package cli

import (
	"fmt"
	"os"
	"time"
)

// Environment overrides applied when the matching flag is left empty.
const (
	EnvRedisAddr     = "TENDRIL_REDIS_ADDR"
	EnvRedisPassword = "TENDRIL_REDIS_PASSWORD"
	EnvSessionTTL    = "TENDRIL_SESSION_TTL"
	EnvSessionKey    = "TENDRIL_SESSION_KEY"
)

// EngineOptions selects the scenario an engine is built from.
type EngineOptions struct {
	Dir       string
	Scenarios []string
	Slots     string
	Entries   []string
	Debug     bool

	// Actions is an actions file binding node actions to local commands.
	// Without it actions are only logged.
	Actions string

	// MaxInputSize limits utterances in bytes on every surface.
	// Zero uses runner.EnvMaxInputSize or the default.
	MaxInputSize int
}

// StoreOptions selects where live sessions are kept.
// An empty RedisAddr keeps them in memory.
type StoreOptions struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// SessionKey is a hex encoded AES-256 key sealing every stored state.
	SessionKey string
	// Redact lists patterns masked in the stored utterance and response.
	Redact []string
}

// ApplyEnv fills unset fields from the environment.
func (o *StoreOptions) ApplyEnv() error {
	if o.RedisAddr == "" {
		o.RedisAddr = os.Getenv(EnvRedisAddr)
	}
	if o.RedisPassword == "" {
		o.RedisPassword = os.Getenv(EnvRedisPassword)
	}
	if o.SessionKey == "" {
		o.SessionKey = os.Getenv(EnvSessionKey)
	}
	if o.SessionTTL == 0 {
		if raw := os.Getenv(EnvSessionTTL); raw != "" {
			ttl, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", EnvSessionTTL, raw, err)
			}
			o.SessionTTL = ttl
		}
	}
	return nil
}

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	EngineOptions
	StoreOptions

	SessionID string
	Headless  bool
	JSON      bool
	Rich      bool
	Confirm   bool
}

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	EngineOptions
	StoreOptions

	Port            int
	ShutdownTimeout time.Duration
}

// MCPOptions contains the configuration for the mcp command.
type MCPOptions struct {
	EngineOptions
	StoreOptions

	Transport string
	Port      int
}
