package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tendril/pkg/session"
)

// ErrNoSharedStore is returned by session commands run without a Redis address.
var ErrNoSharedStore = errors.New("session commands need a shared store (--redis-addr or " + EnvRedisAddr + ")")

// ListSessions prints the ids of the live sessions.
func ListSessions(ctx context.Context, store StoreOptions, out io.Writer) error {
	return withSessionStore(ctx, store, func(m *session.Manager) error {
		ids, err := m.List(ctx)
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(out, "No active sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Active Sessions:")
		for _, id := range ids {
			fmt.Fprintf(out, "- %s\n", id)
		}
		return nil
	})
}

// ShowSession prints the state of a session as indented JSON.
func ShowSession(ctx context.Context, store StoreOptions, sessionID string, out io.Writer) error {
	return withSessionStore(ctx, store, func(m *session.Manager) error {
		state, err := m.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session '%s': %w", sessionID, err)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	})
}

// DeleteSession removes a session.
func DeleteSession(ctx context.Context, store StoreOptions, sessionID string, out io.Writer) error {
	return withSessionStore(ctx, store, func(m *session.Manager) error {
		if err := m.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
		}
		printSystemMessage(out, "Session '%s' deleted.", sessionID)
		return nil
	})
}

func withSessionStore(ctx context.Context, store StoreOptions, fn func(*session.Manager) error) error {
	if err := store.ApplyEnv(); err != nil {
		return err
	}
	if store.RedisAddr == "" {
		return ErrNoSharedStore
	}
	sessions, closeStore, err := openSessions(ctx, store, createLogger(false))
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(sessions)
}
