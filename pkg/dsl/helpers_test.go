package dsl_test

import (
	"context"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
)

func recordActions(fn func(domain.Node, *domain.DialogState)) ports.ActionExecutor {
	return ports.ExecutorFunc(func(_ context.Context, node domain.Node, state *domain.DialogState) error {
		fn(node, state)
		return nil
	})
}
