package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Execute(t *testing.T) {
	ctx := context.Background()
	state := domain.NewState("s-1")
	state.Slots = map[string]string{"size": "大"}

	t.Run("Dispatches By Action Name", func(t *testing.T) {
		r := New()
		var got string
		r.Register("place_order", func(_ context.Context, node domain.Node, s *domain.DialogState) error {
			got = node.ID + ":" + s.Slots["size"]
			return nil
		})

		require.NoError(t, r.Execute(ctx, domain.Node{ID: "n2", Action: "place_order"}, state))
		assert.Equal(t, "n2:大", got)
		assert.Equal(t, []string{"place_order"}, r.Names())
	})

	t.Run("Unknown Action Fails", func(t *testing.T) {
		err := New().Execute(ctx, domain.Node{ID: "n2", Action: "ghost"}, state)
		assert.EqualError(t, err, "action not found: ghost")
	})

	t.Run("Fallback Receives Unknown Actions", func(t *testing.T) {
		boom := errors.New("boom")
		var seen string
		r := New(WithFallback(ports.ExecutorFunc(func(_ context.Context, node domain.Node, _ *domain.DialogState) error {
			seen = node.Action
			return boom
		})))

		err := r.Execute(ctx, domain.Node{Action: "notify"}, state)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "notify", seen)
	})

	t.Run("Register Replaces", func(t *testing.T) {
		r := New()
		r.Register("a", func(context.Context, domain.Node, *domain.DialogState) error { return errors.New("old") })
		r.Register("a", func(context.Context, domain.Node, *domain.DialogState) error { return nil })
		assert.NoError(t, r.Execute(ctx, domain.Node{Action: "a"}, state))
	})
}
