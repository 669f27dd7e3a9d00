package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorFunc(t *testing.T) {
	var seen string
	exec := ports.ExecutorFunc(func(ctx context.Context, node domain.Node, state *domain.DialogState) error {
		seen = node.Action + ":" + state.Slots["size"]
		return nil
	})

	state := domain.NewState("s1")
	state.Slots["size"] = "中"
	require.NoError(t, exec.Execute(context.Background(), domain.Node{Action: "order"}, state))
	assert.Equal(t, "order:中", seen)

	assert.NoError(t, ports.NopExecutor{}.Execute(context.Background(), domain.Node{}, state))
}
