package runner_test

import (
	"context"
	"testing"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...tendril.Option) *tendril.Engine {
	t.Helper()
	engine, err := tendril.New("../../examples/buy-clothes", opts...)
	require.NoError(t, err)
	return engine
}

// MockHandler records the runner's IO.
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Output(ctx context.Context, reply runner.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockHandler) Input(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockHandler) SystemOutput(ctx context.Context, msg string) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
