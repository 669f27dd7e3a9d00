package domain

import (
	"errors"
	"fmt"
)

// ErrNoReachableIntent is returned when a turn has no available node to match against.
var ErrNoReachableIntent = errors.New("no reachable intent")

// ErrUnresolvedReference is the sentinel matched by every UnresolvedReferenceError.
var ErrUnresolvedReference = errors.New("unresolved reference")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// Reference kinds used by UnresolvedReferenceError.
const (
	RefNode = "node"
	RefSlot = "slot"
)

// UnresolvedReferenceError reports a node or slot identifier that is absent
// from the scenario graph or slot registry.
type UnresolvedReferenceError struct {
	Kind     string
	ID       string
	Referrer string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("unresolved reference: %s '%s' (referenced by '%s')", e.Kind, e.ID, e.Referrer)
	}
	return fmt.Sprintf("unresolved reference: %s '%s'", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrUnresolvedReference) hold.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
