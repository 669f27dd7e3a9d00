package runtime

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/scenario"
)

// Renderer produces the outgoing text of a turn.
type Renderer struct {
	Registry    *scenario.Registry
	Substituter Substituter
}

// Render returns the prompt of needSlot when asking, or the hit node's
// response template with its slot values substituted when answering.
// It has no side effects.
func (r *Renderer) Render(action domain.Action, needSlot string, hit domain.Node, filled map[string]string) (string, error) {
	switch action {
	case domain.ActionAsk:
		return r.Registry.Prompt(needSlot)
	case domain.ActionAnswer:
		sub := r.Substituter
		if sub == nil {
			sub = LiteralSubstituter{}
		}
		return sub.Substitute(hit.Response, hit.Slots, filled), nil
	default:
		return "", fmt.Errorf("unknown action %q for node '%s'", action, hit.ID)
	}
}
