package runner

import (
	"context"

	"github.com/aretw0/tendril/pkg/domain"
)

// Reply is what a handler presents to the user after a turn.
type Reply struct {
	SessionID string        `json:"session_id,omitempty"`
	Text      string        `json:"text"`
	Action    domain.Action `json:"action,omitempty"`
	HitIntent string        `json:"hit_intent,omitempty"`
	NeedSlot  string        `json:"need_slot,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
}

// NewReply builds the Reply of a completed turn.
func NewReply(text string, state *domain.DialogState) Reply {
	return Reply{
		SessionID: state.SessionID,
		Text:      text,
		Action:    state.Action,
		HitIntent: state.HitIntent,
		NeedSlot:  state.NeedSlot,
		Finished:  Finished(state),
	}
}

// Finished reports whether the session has answered a node without follow-ups,
// after which no utterance can match.
func Finished(state *domain.DialogState) bool {
	return state.Turn > 0 && state.Action == domain.ActionAnswer && len(state.AvailableNodes) == 0
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (console) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the reply of a turn.
	Output(ctx context.Context, reply Reply) error

	// Input reads the next raw utterance. The Runner sanitizes it.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (errors, session end) distinct from replies.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms a reply before it is printed (e.g. markdown to ANSI).
type ContentRenderer func(string) (string, error)
