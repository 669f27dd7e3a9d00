package domain

// DialogState is the memory of one session. It is the only mutable entity of
// the engine and must not be shared by concurrent turns.
type DialogState struct {
	SessionID string `json:"session_id"`

	// UserInput is the latest utterance.
	UserInput string `json:"user_input"`

	// AvailableNodes are the node ids eligible for matching on the next turn.
	AvailableNodes []string `json:"available_nodes"`

	// HitIntent is the node selected on the last turn, empty before the first one.
	HitIntent      string  `json:"hit_intent,omitempty"`
	HitIntentScore float64 `json:"hit_intent_score"`

	// Slots holds every value filled during the session, keyed by slot name.
	// Entries are added, never removed.
	Slots map[string]string `json:"slots"`

	// NeedSlot is the next unfilled slot of HitIntent, empty when none is missing.
	NeedSlot string `json:"need_slot,omitempty"`

	Action   Action `json:"action,omitempty"`
	Response string `json:"response,omitempty"`

	// Turn counts completed turns.
	Turn int `json:"turn"`

	// History records the hit intent of every completed turn.
	History []string `json:"history,omitempty"`
}

// NewState creates a fresh session state seeded with the given available nodes.
func NewState(sessionID string, seed ...string) *DialogState {
	available := make([]string, len(seed))
	copy(available, seed)
	return &DialogState{
		SessionID:      sessionID,
		AvailableNodes: available,
		Slots:          make(map[string]string),
	}
}

// Slot returns the filled value of a slot.
func (s *DialogState) Slot(name string) (string, bool) {
	v, ok := s.Slots[name]
	return v, ok
}

// Clone returns a deep copy of the state.
func (s *DialogState) Clone() *DialogState {
	if s == nil {
		return nil
	}
	c := *s
	c.AvailableNodes = make([]string, len(s.AvailableNodes))
	copy(c.AvailableNodes, s.AvailableNodes)
	c.History = append([]string(nil), s.History...)
	c.Slots = make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		c.Slots[k] = v
	}
	return &c
}
