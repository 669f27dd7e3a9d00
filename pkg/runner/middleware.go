package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/ports"
)

// ErrActionDenied is returned when an interceptor blocks a node action.
var ErrActionDenied = errors.New("action denied by policy")

// ActionInterceptor is a middleware that can allow or block a node action.
// It returns true if execution should proceed.
type ActionInterceptor func(ctx context.Context, node domain.Node, state *domain.DialogState) (bool, error)

// MultiInterceptor chains multiple interceptors. The first denial wins.
func MultiInterceptor(interceptors ...ActionInterceptor) ActionInterceptor {
	return func(ctx context.Context, node domain.Node, state *domain.DialogState) (bool, error) {
		for _, interceptor := range interceptors {
			allowed, err := interceptor(ctx, node, state)
			if err != nil {
				return false, err
			}
			if !allowed {
				return false, nil
			}
		}
		return true, nil
	}
}

// ConfirmationMiddleware asks the user through handler before an action runs.
// Only "y" and "yes" allow it.
func ConfirmationMiddleware(handler IOHandler) ActionInterceptor {
	return func(ctx context.Context, node domain.Node, state *domain.DialogState) (bool, error) {
		msg := fmt.Sprintf("Action '%s' requested by '%s' with %v\nAllow execution? (y/N)", node.Action, node.ID, state.Slots)
		if err := handler.SystemOutput(ctx, msg); err != nil {
			return false, err
		}

		input, err := handler.Input(ctx)
		if err != nil {
			return false, err
		}

		input = strings.TrimSpace(strings.ToLower(input))
		return input == "y" || input == "yes", nil
	}
}

// AutoApproveMiddleware allows everything.
func AutoApproveMiddleware() ActionInterceptor {
	return func(ctx context.Context, node domain.Node, state *domain.DialogState) (bool, error) {
		return true, nil
	}
}

// Intercept guards next with interceptor. A denied action fails the turn with ErrActionDenied.
func Intercept(interceptor ActionInterceptor, next ports.ActionExecutor) ports.ActionExecutor {
	if next == nil {
		next = ports.NopExecutor{}
	}
	return ports.ExecutorFunc(func(ctx context.Context, node domain.Node, state *domain.DialogState) error {
		allowed, err := interceptor(ctx, node, state)
		if err != nil {
			return fmt.Errorf("action interceptor error: %w", err)
		}
		if !allowed {
			return fmt.Errorf("%w: %s", ErrActionDenied, node.Action)
		}
		return next.Execute(ctx, node, state)
	})
}
