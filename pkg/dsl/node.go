package dsl

import "github.com/aretw0/tendril/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// When adds intent phrases the node is matched against.
func (n *NodeBuilder) When(phrases ...string) *NodeBuilder {
	n.node.Intents = append(n.node.Intents, phrases...)
	return n
}

// Needs declares the slots the node requires, asked for in this order.
func (n *NodeBuilder) Needs(slots ...string) *NodeBuilder {
	n.node.Slots = append(n.node.Slots, slots...)
	return n
}

// Then adds follow-up nodes reachable once this node has answered.
func (n *NodeBuilder) Then(children ...string) *NodeBuilder {
	n.node.Children = append(n.node.Children, children...)
	return n
}

// Say sets the response template.
func (n *NodeBuilder) Say(response string) *NodeBuilder {
	n.node.Response = response
	return n
}

// Do sets the action run when the node answers.
func (n *NodeBuilder) Do(action string) *NodeBuilder {
	n.node.Action = action
	return n
}

// Terminal removes every follow-up: the dialog ends once this node answers.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Children = nil
	return n
}

// Add starts the next node, for chaining a whole scenario in one expression.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns the underlying domain.Node, unqualified.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	node := n.node
	node.Intents = append([]string(nil), n.node.Intents...)
	node.Slots = append([]string(nil), n.node.Slots...)
	node.Children = append([]string(nil), n.node.Children...)
	return node
}
