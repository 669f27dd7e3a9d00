package scenario

import "github.com/aretw0/tendril/pkg/domain"

// Separator joins the scenario name and the local node id.
const Separator = "-"

// QualifyID prefixes a local node id with its scenario name.
func QualifyID(scenarioName, id string) string {
	return scenarioName + Separator + id
}

// Qualify rewrites node ids and child references into the scenario's
// namespace. The input slice is left untouched.
func Qualify(scenarioName string, nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		q := cloneNode(n)
		q.ID = QualifyID(scenarioName, n.ID)
		if len(n.Children) > 0 {
			q.Children = make([]string, len(n.Children))
			for i, child := range n.Children {
				q.Children[i] = QualifyID(scenarioName, child)
			}
		}
		out = append(out, q)
	}
	return out
}
