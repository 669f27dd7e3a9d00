package runtime

import (
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/scenario"
)

// noScore is below every valid similarity, so the first candidate always wins
// against it, even with a score of 0.
const noScore = -1.0

// NodeScore is the best similarity between the utterance and any of the node's
// intent phrases.
func NodeScore(utterance string, node domain.Node) float64 {
	best := 0.0
	for i, phrase := range node.Intents {
		score := Similarity(utterance, phrase)
		if i == 0 || score > best {
			best = score
		}
	}
	return best
}

// Match selects the candidate whose intent phrases are most similar to the
// utterance. Candidates are scanned in order and only a strictly greater score
// replaces the current best, so ties go to the earliest candidate.
func Match(g *scenario.Graph, utterance string, candidates []string) (domain.Node, float64, error) {
	if len(candidates) == 0 {
		return domain.Node{}, noScore, domain.ErrNoReachableIntent
	}

	var hit domain.Node
	maxScore := noScore
	for _, id := range candidates {
		node, err := g.Node(id)
		if err != nil {
			return domain.Node{}, noScore, err
		}
		if score := NodeScore(utterance, node); score > maxScore {
			maxScore = score
			hit = node
		}
	}
	return hit, maxScore, nil
}
