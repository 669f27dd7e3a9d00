package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	seed := []string{"a", "b"}
	state := domain.NewState("s1", seed...)
	seed[0] = "mutated"

	assert.Equal(t, "s1", state.SessionID)
	assert.Equal(t, []string{"a", "b"}, state.AvailableNodes)
	assert.NotNil(t, state.Slots)
	assert.Empty(t, state.HitIntent)
}

func TestDialogState_Clone(t *testing.T) {
	state := domain.NewState("s1", "a")
	state.Slots["size"] = "中"
	state.History = []string{"a"}

	clone := state.Clone()
	clone.Slots["color"] = "red"
	clone.AvailableNodes[0] = "b"
	clone.History[0] = "b"

	assert.NotContains(t, state.Slots, "color")
	assert.Equal(t, "a", state.AvailableNodes[0])
	assert.Equal(t, "a", state.History[0])

	empty := &domain.DialogState{AvailableNodes: []string{}}
	assert.NotNil(t, empty.Clone().AvailableNodes)
	assert.Nil(t, (*domain.DialogState)(nil).Clone())
}

func TestUnresolvedReferenceError(t *testing.T) {
	err := fmt.Errorf("turn failed: %w", &domain.UnresolvedReferenceError{
		Kind:     domain.RefSlot,
		ID:       "color",
		Referrer: "buy-node2",
	})

	require.ErrorIs(t, err, domain.ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "slot 'color'")
	assert.Contains(t, err.Error(), "buy-node2")

	var ref *domain.UnresolvedReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "color", ref.ID)
	assert.False(t, errors.Is(err, domain.ErrNoReachableIntent))
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, domain.ActionAsk.Valid())
	assert.True(t, domain.ActionAnswer.Valid())
	assert.False(t, domain.Action("fallback").Valid())
}
