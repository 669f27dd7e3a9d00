package runtime

import "github.com/aretw0/tendril/pkg/domain"

// FirstMissingSlot returns the first slot of node, in declaration order, with
// no value in filled. It returns "" when every required slot is present.
func FirstMissingSlot(node domain.Node, filled map[string]string) string {
	for _, slot := range node.Slots {
		if _, ok := filled[slot]; !ok {
			return slot
		}
	}
	return ""
}
