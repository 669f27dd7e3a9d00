package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ProcessTurn_BuyClothes(t *testing.T) {
	g, r := buyClothes(t)

	var executed []string
	executor := ports.ExecutorFunc(func(ctx context.Context, node domain.Node, state *domain.DialogState) error {
		executed = append(executed, node.Action+":"+state.Slots["size"]+state.Slots["color"])
		return nil
	})
	engine := runtime.NewEngine(g, r, runtime.WithActionExecutor(executor))
	ctx := context.Background()
	state := domain.NewState("s1", "buy-clothes-node1")

	t.Run("Turn 1 Asks For Size", func(t *testing.T) {
		text, got, err := engine.ProcessTurn(ctx, "我想买衣服", state)
		require.NoError(t, err)
		assert.Same(t, state, got, "state is mutated in place")
		assert.Equal(t, "请问您需要的尺码？", text)

		want := &domain.DialogState{
			SessionID:      "s1",
			UserInput:      "我想买衣服",
			AvailableNodes: []string{"buy-clothes-node1"},
			HitIntent:      "buy-clothes-node1",
			HitIntentScore: 1.0,
			Slots:          map[string]string{},
			NeedSlot:       "size",
			Action:         domain.ActionAsk,
			Response:       "请问您需要的尺码？",
			Turn:           1,
			History:        []string{"buy-clothes-node1"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Turn 2 Fills Size And Answers", func(t *testing.T) {
		text, got, err := engine.ProcessTurn(ctx, "我要中号", state)
		require.NoError(t, err)
		assert.Equal(t, "好的，您要的尺码是中，请稍等", text)
		assert.Equal(t, "中", got.Slots["size"])
		assert.Empty(t, got.NeedSlot)
		assert.Equal(t, domain.ActionAnswer, got.Action)
		assert.Equal(t, []string{"buy-clothes-node2"}, got.AvailableNodes)
	})

	t.Run("Turn 3 Reuses Size Across Intents", func(t *testing.T) {
		text, got, err := engine.ProcessTurn(ctx, "有什么颜色", state)
		require.NoError(t, err)
		assert.Equal(t, "请问您想要什么颜色？", text)
		assert.Equal(t, "color", got.NeedSlot)
		assert.Equal(t, []string{"buy-clothes-node2"}, got.AvailableNodes, "asking pins the conversation")
	})

	t.Run("Turn 4 Keeps Filled Slots On Miss", func(t *testing.T) {
		text, got, err := engine.ProcessTurn(ctx, "随便", state)
		require.NoError(t, err)
		assert.Equal(t, "请问您想要什么颜色？", text)
		assert.Equal(t, "中", got.Slots["size"])
		assert.NotContains(t, got.Slots, "color")
	})

	t.Run("Turn 5 Answers Terminal Node And Runs Action", func(t *testing.T) {
		text, got, err := engine.ProcessTurn(ctx, "红色吧", state)
		require.NoError(t, err)
		assert.Equal(t, "好的，中号红色已下单", text)
		assert.Empty(t, got.AvailableNodes)
		assert.NotNil(t, got.AvailableNodes)
		assert.Equal(t, []string{"place_order:中红"}, executed)
		assert.Equal(t, 5, got.Turn)
	})

	t.Run("Turn 6 Has No Reachable Intent", func(t *testing.T) {
		before := state.Clone()
		_, got, err := engine.ProcessTurn(ctx, "还有别的吗", state)
		require.ErrorIs(t, err, domain.ErrNoReachableIntent)
		if diff := cmp.Diff(before, got); diff != "" {
			t.Errorf("failed turn must not change state (-before +after):\n%s", diff)
		}
	})
}

func TestEngine_ProcessTurn_SlotsAreMonotonic(t *testing.T) {
	g, r := buyClothes(t)
	engine := runtime.NewEngine(g, r)
	state := domain.NewState("s1", "buy-clothes-node2")

	utterances := []string{"大号", "不知道", "什么颜色", "嗯", "蓝"}
	filled := map[string]string{}
	for _, u := range utterances {
		_, got, err := engine.ProcessTurn(context.Background(), u, state)
		require.NoError(t, err)
		for k, v := range filled {
			assert.Equal(t, v, got.Slots[k], "slot %s changed after %q", k, u)
		}
		for k, v := range got.Slots {
			filled[k] = v
		}
	}
	assert.Equal(t, map[string]string{"size": "大", "color": "蓝"}, state.Slots)
}

func TestEngine_ProcessTurn_FailuresAreAtomic(t *testing.T) {
	g, r := buyClothes(t)
	ctx := context.Background()

	t.Run("Unknown Available Node", func(t *testing.T) {
		engine := runtime.NewEngine(g, r)
		state := domain.NewState("s1", "ghost")
		_, got, err := engine.ProcessTurn(ctx, "我想买衣服", state)
		require.ErrorIs(t, err, domain.ErrUnresolvedReference)
		assert.Contains(t, err.Error(), "ghost")
		assert.Empty(t, got.UserInput)
		assert.Zero(t, got.Turn)
	})

	t.Run("Executor Failure", func(t *testing.T) {
		boom := errors.New("inventory offline")
		engine := runtime.NewEngine(g, r, runtime.WithActionExecutor(ports.ExecutorFunc(
			func(context.Context, domain.Node, *domain.DialogState) error { return boom },
		)))
		state := domain.NewState("s1", "buy-clothes-node2")
		state.Slots["size"] = "小"

		_, got, err := engine.ProcessTurn(ctx, "黄色", state)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "place_order")
		assert.NotContains(t, got.Slots, "color")
		assert.Equal(t, []string{"buy-clothes-node2"}, got.AvailableNodes)
	})

	t.Run("Nil State", func(t *testing.T) {
		engine := runtime.NewEngine(g, r)
		_, _, err := engine.ProcessTurn(ctx, "hi", nil)
		assert.Error(t, err)
	})
}

func TestEngine_Hooks(t *testing.T) {
	g, r := buyClothes(t)

	var intents []string
	var slots []string
	var turns []domain.Action
	hooks := domain.LifecycleHooks{
		OnIntentMatched: func(ctx context.Context, e *domain.IntentEvent) {
			intents = append(intents, e.NodeID)
		},
		OnSlotFilled: func(ctx context.Context, e *domain.SlotEvent) {
			slots = append(slots, e.Slot+"="+e.Value)
		},
		OnTurnComplete: func(ctx context.Context, e *domain.TurnEvent) {
			assert.Equal(t, "s1", e.SessionID)
			turns = append(turns, e.Action)
		},
	}

	engine := runtime.NewEngine(g, r, runtime.WithLifecycleHooks(hooks))
	state := domain.NewState("s1", "buy-clothes-node1")
	_, _, err := engine.ProcessTurn(context.Background(), "我想买衣服", state)
	require.NoError(t, err)
	_, _, err = engine.ProcessTurn(context.Background(), "要小号", state)
	require.NoError(t, err)

	assert.Equal(t, []string{"buy-clothes-node1", "buy-clothes-node1"}, intents)
	assert.Equal(t, []string{"size=小"}, slots)
	assert.Equal(t, []domain.Action{domain.ActionAsk, domain.ActionAnswer}, turns)
}

func TestEngine_Hooks_SkipFailedTurns(t *testing.T) {
	g, r := buyClothes(t)

	var events []string
	hooks := domain.LifecycleHooks{
		OnIntentMatched: func(ctx context.Context, e *domain.IntentEvent) {
			events = append(events, "intent:"+e.NodeID)
		},
		OnSlotFilled: func(ctx context.Context, e *domain.SlotEvent) {
			events = append(events, "slot:"+e.Slot)
		},
		OnTurnComplete: func(ctx context.Context, e *domain.TurnEvent) {
			events = append(events, "turn")
		},
	}
	failing := ports.ExecutorFunc(func(context.Context, domain.Node, *domain.DialogState) error {
		return errors.New("boom")
	})

	engine := runtime.NewEngine(g, r, runtime.WithLifecycleHooks(hooks), runtime.WithActionExecutor(failing))
	state := domain.NewState("s1", "buy-clothes-node2")

	_, got, err := engine.ProcessTurn(context.Background(), "大号红色", state)
	require.Error(t, err)
	assert.Empty(t, got.Slots)
	assert.Empty(t, events)
}

func TestEngine_WithSubstituter(t *testing.T) {
	g, r := buyClothes(t)
	engine := runtime.NewEngine(g, r, runtime.WithSubstituter(runtime.DelimitedSubstituter{}))

	state := domain.NewState("s1", "buy-clothes-node1")
	text, _, err := engine.ProcessTurn(context.Background(), "我想买大号衣服", state)
	require.NoError(t, err)
	// The template has no {size} placeholder, so nothing is substituted.
	assert.Equal(t, "好的，您要的尺码是size，请稍等", text)
}
