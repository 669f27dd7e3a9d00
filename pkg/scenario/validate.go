package scenario

import (
	"errors"
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
)

// Validate checks graph integrity against the registry: every child must
// resolve to a node, every required slot must be registered and every node
// must carry at least one intent phrase. All defects are reported at once.
func Validate(g *Graph, r *Registry) error {
	var errs []error
	for _, n := range g.Nodes() {
		if len(n.Intents) == 0 {
			errs = append(errs, fmt.Errorf("node '%s' has no intent phrases", n.ID))
		}
		for _, child := range n.Children {
			if !g.Has(child) {
				errs = append(errs, &domain.UnresolvedReferenceError{Kind: domain.RefNode, ID: child, Referrer: n.ID})
			}
		}
		for _, slot := range n.Slots {
			if r == nil || !r.Has(slot) {
				errs = append(errs, &domain.UnresolvedReferenceError{Kind: domain.RefSlot, ID: slot, Referrer: n.ID})
			}
		}
	}
	return errors.Join(errs...)
}
