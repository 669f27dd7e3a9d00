package domain

// Action is the decision taken by the policy for a turn.
type Action string

const (
	// ActionAsk prompts the user for the next missing slot.
	ActionAsk Action = "ask"
	// ActionAnswer delivers the node's rendered response.
	ActionAnswer Action = "answer"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == ActionAsk || a == ActionAnswer
}
