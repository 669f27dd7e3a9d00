package domain

// Node is one state of the scenario graph: a single user intent, the slots it
// needs before it can answer, and the nodes that open up once it does.
//
// Field keys follow the scenario file format (intent, slot, childnode, response).
type Node struct {
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Intents are example phrases used for lexical matching. Never empty in a valid graph.
	Intents []string `json:"intent" yaml:"intent" mapstructure:"intent"`

	// Slots are collected in declaration order before the node answers.
	Slots []string `json:"slot,omitempty" yaml:"slot,omitempty" mapstructure:"slot"`

	// Children become the available nodes after this node answers.
	// An empty list marks a terminal node.
	Children []string `json:"childnode,omitempty" yaml:"childnode,omitempty" mapstructure:"childnode"`

	// Response is the answer template. Slot names appearing in it are
	// replaced by their filled values.
	Response string `json:"response" yaml:"response" mapstructure:"response"`

	// Action optionally names a side-effect the host runs when the node answers.
	Action string `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
}

// IsTerminal reports whether the node has no reachable successors.
func (n Node) IsTerminal() bool {
	return len(n.Children) == 0
}
