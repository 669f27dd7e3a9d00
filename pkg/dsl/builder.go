package dsl

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/scenario"
)

// Builder manages the scenario construction.
type Builder struct {
	name  string
	order []string
	nodes map[string]*NodeBuilder
	slots []domain.SlotDefinition
}

// New creates a new scenario builder. A non-empty name qualifies every node
// id the same way scenario files are qualified by their file name.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the scenario. The first node added is the entry.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Slot registers a slot with its prompt and value pattern.
func (b *Builder) Slot(name, prompt, pattern string) *Builder {
	b.slots = append(b.slots, domain.SlotDefinition{Name: name, Prompt: prompt, Pattern: pattern})
	return b
}

// Nodes returns the nodes in insertion order, qualified with the scenario name.
func (b *Builder) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}
	if b.name == "" {
		return nodes
	}
	return scenario.Qualify(b.name, nodes)
}

// Build compiles the scenario into a validated graph and slot registry.
func (b *Builder) Build() (*scenario.Graph, *scenario.Registry, error) {
	graph, err := scenario.NewGraph(b.Nodes()...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build graph: %w", err)
	}

	registry, err := scenario.NewRegistry(b.slots...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build slot registry: %w", err)
	}

	if err := scenario.Validate(graph, registry); err != nil {
		return nil, nil, fmt.Errorf("scenario integrity check failed:\n%w", err)
	}
	return graph, registry, nil
}
