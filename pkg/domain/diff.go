package domain

import "slices"

// StateDiff represents the changes between two dialog states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	HitIntent      *string  `json:"hit_intent,omitempty"`
	AvailableNodes *[]string `json:"available_nodes,omitempty"`
	NeedSlot       *string  `json:"need_slot,omitempty"`
	Action         *Action  `json:"action,omitempty"`

	// Slots contains only added or modified slot values.
	// Slots are never removed within a session, so there is no deletion marker.
	Slots map[string]string `json:"slots,omitempty"`

	// HistoryParams contains *new* items appended to history.
	HistoryParams *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the history stack.
type HistoryDelta struct {
	Appended []string `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
func Diff(oldState, newState *DialogState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.HitIntent != newState.HitIntent {
		if newState.HitIntent != "" || oldState != nil {
			diff.HitIntent = &newState.HitIntent
		}
	}
	if oldState == nil || !slices.Equal(oldState.AvailableNodes, newState.AvailableNodes) {
		nodes := append([]string{}, newState.AvailableNodes...)
		diff.AvailableNodes = &nodes
	}
	if (oldState == nil && newState.NeedSlot != "") || (oldState != nil && oldState.NeedSlot != newState.NeedSlot) {
		diff.NeedSlot = &newState.NeedSlot
	}
	if (oldState == nil && newState.Action != "") || (oldState != nil && oldState.Action != newState.Action) {
		diff.Action = &newState.Action
	}

	diff.Slots = diffSlots(oldState, newState)
	diff.HistoryParams = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffSlots(old, new *DialogState) map[string]string {
	delta := make(map[string]string)
	for k, v := range new.Slots {
		if old == nil {
			delta[k] = v
			continue
		}
		if prev, ok := old.Slots[k]; !ok || prev != v {
			delta[k] = v
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes append-only behavior for History.
func diffHistory(old, new *DialogState) *HistoryDelta {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil {
		return &HistoryDelta{Appended: append([]string{}, new.History...)}
	}
	if len(new.History) > len(old.History) {
		return &HistoryDelta{Appended: append([]string{}, new.History[len(old.History):]...)}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.HitIntent == nil &&
		d.AvailableNodes == nil &&
		d.NeedSlot == nil &&
		d.Action == nil &&
		len(d.Slots) == 0 &&
		d.HistoryParams == nil
}
