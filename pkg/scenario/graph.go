package scenario

import (
	"errors"
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
)

// Graph maps qualified node ids to nodes. It is read-only once built.
type Graph struct {
	nodes   map[string]domain.Node
	order   []string
	entries []string
}

// NewGraph indexes nodes by id, preserving their declaration order.
// The first node is recorded as the graph's entry point.
func NewGraph(nodes ...domain.Node) (*Graph, error) {
	g := &Graph{nodes: make(map[string]domain.Node, len(nodes))}
	if err := g.add(nodes); err != nil {
		return nil, err
	}
	if len(nodes) > 0 {
		g.entries = []string{nodes[0].ID}
	}
	return g, nil
}

// Merge combines several graphs. Entries are kept in argument order.
func Merge(graphs ...*Graph) (*Graph, error) {
	merged := &Graph{nodes: make(map[string]domain.Node)}
	var errs []error
	for _, g := range graphs {
		if g == nil {
			continue
		}
		if err := merged.add(g.Nodes()); err != nil {
			errs = append(errs, err)
		}
		merged.entries = append(merged.entries, g.entries...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return merged, nil
}

// add indexes nodes and reports every missing or duplicate id at once.
func (g *Graph) add(nodes []domain.Node) error {
	var errs []error
	for i, n := range nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node at position %d is missing an id", i))
			continue
		}
		if _, exists := g.nodes[n.ID]; exists {
			errs = append(errs, fmt.Errorf("duplicate node id '%s'", n.ID))
			continue
		}
		g.nodes[n.ID] = cloneNode(n)
		g.order = append(g.order, n.ID)
	}
	return errors.Join(errs...)
}

// Node resolves a node by id.
func (g *Graph) Node(id string) (domain.Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return domain.Node{}, &domain.UnresolvedReferenceError{Kind: domain.RefNode, ID: id}
	}
	return n, nil
}

// Has reports whether id resolves in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns a copy of every node in declaration order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, cloneNode(g.nodes[id]))
	}
	return out
}

// Entries returns the first node id of each loaded scenario.
func (g *Graph) Entries() []string {
	return append([]string(nil), g.entries...)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

func cloneNode(n domain.Node) domain.Node {
	n.Intents = append([]string(nil), n.Intents...)
	n.Slots = append([]string(nil), n.Slots...)
	n.Children = append([]string(nil), n.Children...)
	return n
}
