package ports

import (
	"context"

	"github.com/aretw0/tendril/pkg/domain"
)

// ActionExecutor runs the side-effect a node declares in its "action" field.
// It is invoked when the node answers, before the response is rendered.
type ActionExecutor interface {
	Execute(ctx context.Context, node domain.Node, state *domain.DialogState) error
}

// NopExecutor ignores every action.
type NopExecutor struct{}

func (NopExecutor) Execute(context.Context, domain.Node, *domain.DialogState) error {
	return nil
}

// ExecutorFunc adapts a function to ActionExecutor.
type ExecutorFunc func(ctx context.Context, node domain.Node, state *domain.DialogState) error

func (f ExecutorFunc) Execute(ctx context.Context, node domain.Node, state *domain.DialogState) error {
	return f(ctx, node, state)
}
