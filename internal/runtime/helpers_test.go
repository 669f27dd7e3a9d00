package runtime_test

import (
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/scenario"
	"github.com/stretchr/testify/require"
)

// buyClothes builds the "buy-clothes" scenario used across the runtime tests.
func buyClothes(t *testing.T) (*scenario.Graph, *scenario.Registry) {
	t.Helper()

	nodes := scenario.Qualify("buy-clothes", []domain.Node{
		{
			ID:       "node1",
			Intents:  []string{"我想买衣服", "想买件衣服"},
			Slots:    []string{"size"},
			Children: []string{"node2"},
			Response: "好的，您要的尺码是size，请稍等",
		},
		{
			ID:       "node2",
			Intents:  []string{"什么颜色", "有什么颜色"},
			Slots:    []string{"size", "color"},
			Response: "好的，size号color色已下单",
			Action:   "place_order",
		},
	})
	g, err := scenario.NewGraph(nodes...)
	require.NoError(t, err)

	r, err := scenario.NewRegistry(
		domain.SlotDefinition{Name: "size", Prompt: "请问您需要的尺码？", Pattern: "大|中|小"},
		domain.SlotDefinition{Name: "color", Prompt: "请问您想要什么颜色？", Pattern: "红|黄|蓝"},
	)
	require.NoError(t, err)
	require.NoError(t, scenario.Validate(g, r))
	return g, r
}
