package runtime

import "github.com/aretw0/tendril/pkg/domain"

// Decide picks the turn's action and the nodes available on the next turn.
//
// With a slot still missing the engine asks for it and stays pinned to the
// current node. Otherwise it answers and opens the node's children, which may
// be none at all for a terminal node.
func Decide(needSlot string, hit domain.Node) (domain.Action, []string) {
	if needSlot != "" {
		return domain.ActionAsk, []string{hit.ID}
	}
	next := make([]string, len(hit.Children))
	copy(next, hit.Children)
	return domain.ActionAnswer, next
}
