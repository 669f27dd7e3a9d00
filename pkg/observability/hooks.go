package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tendril/pkg/domain"
)

// LoggingHooks logs every lifecycle event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIntentMatched: func(ctx context.Context, e *domain.IntentEvent) {
			logger.DebugContext(ctx, "intent_matched", "session_id", e.SessionID, "node_id", e.NodeID, "score", e.Score)
		},
		OnSlotFilled: func(ctx context.Context, e *domain.SlotEvent) {
			logger.DebugContext(ctx, "slot_filled", "session_id", e.SessionID, "node_id", e.NodeID, "slot", e.Slot, "value", e.Value)
		},
		OnTurnComplete: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn_complete",
				"session_id", e.SessionID,
				"node_id", e.NodeID,
				"action", e.Action,
				"need_slot", e.NeedSlot,
				"duration", e.Duration,
			)
		},
	}
}

// Combine fans every event out to each hook set in order. Nil callbacks are skipped.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnIntentMatched != nil {
			prev, fn := out.OnIntentMatched, h.OnIntentMatched
			out.OnIntentMatched = func(ctx context.Context, e *domain.IntentEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				fn(ctx, e)
			}
		}
		if h.OnSlotFilled != nil {
			prev, fn := out.OnSlotFilled, h.OnSlotFilled
			out.OnSlotFilled = func(ctx context.Context, e *domain.SlotEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				fn(ctx, e)
			}
		}
		if h.OnTurnComplete != nil {
			prev, fn := out.OnTurnComplete, h.OnTurnComplete
			out.OnTurnComplete = func(ctx context.Context, e *domain.TurnEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				fn(ctx, e)
			}
		}
	}
	return out
}
