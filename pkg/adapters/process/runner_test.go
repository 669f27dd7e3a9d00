package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func orderState() *domain.DialogState {
	state := domain.NewState("s-1")
	state.UserInput = "大号白色"
	state.Slots = map[string]string{"size": "大", "color": "白"}
	return state
}

func TestExecutor_Execute(t *testing.T) {
	skipWithoutShell(t)
	node := domain.Node{ID: "buy-clothes-node4", Action: "place_order"}

	t.Run("Executes Registered Command With State In Env", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "order.txt")
		x := NewExecutor(WithActions(map[string]ActionConfig{
			"place_order": {
				Command:     "sh",
				Args:        []string{"-c", `printf '%s|%s|%s|%s' "$TENDRIL_SESSION_ID" "$TENDRIL_NODE_ID" "$TENDRIL_SLOT_SIZE" "$TENDRIL_SLOT_COLOR" > "$OUT"`},
				Environment: map[string]string{"OUT": out},
			},
		}))

		require.NoError(t, x.Execute(context.Background(), node, orderState()))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "s-1|buy-clothes-node4|大|白", string(data))
	})

	t.Run("Fails For Unregistered Action", func(t *testing.T) {
		x := NewExecutor()
		err := x.Execute(context.Background(), domain.Node{ID: "n", Action: "rm_everything"}, orderState())
		assert.ErrorIs(t, err, ErrActionNotRegistered)
		assert.Contains(t, err.Error(), "rm_everything")
	})

	t.Run("Surfaces Stderr On Failure", func(t *testing.T) {
		x := NewExecutor()
		x.Register("place_order", "sh", "-c", "echo out of stock >&2; exit 3")

		err := x.Execute(context.Background(), node, orderState())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "action 'place_order' failed")
		assert.Contains(t, err.Error(), "out of stock")
	})

	t.Run("Timeout Stops The Process", func(t *testing.T) {
		x := NewExecutor(WithTimeout(50 * time.Millisecond))
		x.Register("place_order", "sleep", "5")

		start := time.Now()
		err := x.Execute(context.Background(), node, orderState())
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 4*time.Second)
	})
}

func TestLoadActions(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "actions.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
actions:
  - name: place_order
    command: ./order.sh
    args: ["--dry-run"]
    env:
      SHOP: demo
`), 0o644))

		actions, err := LoadActions(path)
		require.NoError(t, err)
		require.Contains(t, actions, "place_order")
		assert.Equal(t, "./order.sh", actions["place_order"].Command)
		assert.Equal(t, []string{"--dry-run"}, actions["place_order"].Args)
		assert.Equal(t, "demo", actions["place_order"].Environment["SHOP"])

		x := NewExecutor(WithActions(actions))
		assert.Equal(t, []string{"place_order"}, x.Actions())
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "actions.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"actions":[{"name":"notify","command":"true"}]}`), 0o644))

		actions, err := LoadActions(path)
		require.NoError(t, err)
		assert.Equal(t, "true", actions["notify"].Command)
	})

	t.Run("Rejects Incomplete Entry", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("actions:\n  - name: notify\n"), 0o644))

		_, err := LoadActions(path)
		assert.ErrorContains(t, err, "needs a name and a command")
	})

	t.Run("Rejects Duplicates", func(t *testing.T) {
		path := filepath.Join(dir, "dup.yaml")
		require.NoError(t, os.WriteFile(path, []byte("actions:\n  - {name: a, command: x}\n  - {name: a, command: y}\n"), 0o644))

		_, err := LoadActions(path)
		assert.ErrorContains(t, err, "declared twice")
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadActions(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read actions file")
	})
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SIZE", envName("size"))
	assert.Equal(t, "SHIP_TO_2", envName("ship-to.2"))
	assert.Equal(t, "_5C3A_7801", envName("尺码"))
	assert.NotEqual(t, envName("尺码"), envName("颜色"))
}

func TestEnvironment(t *testing.T) {
	node := domain.Node{ID: "n"}

	t.Run("Slots In Name Order", func(t *testing.T) {
		state := domain.NewState("s-1")
		state.Slots = map[string]string{"颜色": "白", "尺码": "大", "city": "北京"}

		env, err := environment(ActionConfig{}, node, state)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"TENDRIL_SESSION_ID=s-1",
			"TENDRIL_NODE_ID=n",
			"TENDRIL_UTTERANCE=",
			"TENDRIL_SLOT_CITY=北京",
			"TENDRIL_SLOT__5C3A_7801=大",
			"TENDRIL_SLOT__989C_8272=白",
		}, env)
	})

	t.Run("Colliding Names Are Rejected", func(t *testing.T) {
		state := domain.NewState("s-1")
		state.Slots = map[string]string{"ship-to": "a", "ship_to": "b"}

		_, err := environment(ActionConfig{}, node, state)
		assert.ErrorIs(t, err, ErrSlotNameCollision)
	})

	t.Run("Execute Fails Before Running", func(t *testing.T) {
		x := NewExecutor()
		x.Register("a", "true")
		state := domain.NewState("s-1")
		state.Slots = map[string]string{"Size": "a", "size": "b"}

		err := x.Execute(context.Background(), domain.Node{ID: "n", Action: "a"}, state)
		assert.ErrorIs(t, err, ErrSlotNameCollision)
	})
}
