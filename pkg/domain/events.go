package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIntentMatched EventType = "intent_matched"
	EventSlotFilled    EventType = "slot_filled"
	EventTurnComplete  EventType = "turn_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// IntentEvent is emitted once the matcher selected a node.
type IntentEvent struct {
	EventBase
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

// SlotEvent is emitted for every slot value extracted from an utterance.
type SlotEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Slot   string `json:"slot"`
	Value  string `json:"value"`
}

// TurnEvent is emitted after a turn has been committed to the state.
type TurnEvent struct {
	EventBase
	NodeID   string        `json:"node_id"`
	Action   Action        `json:"action"`
	NeedSlot string        `json:"need_slot,omitempty"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnIntentMatched func(context.Context, *IntentEvent)
	OnSlotFilled    func(context.Context, *SlotEvent)
	OnTurnComplete  func(context.Context, *TurnEvent)
}
