package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes   []string
	CurrentNode    string
	AvailableNodes []string
}

// OverlayFromState builds an overlay from a dialog state.
func OverlayFromState(state *domain.DialogState) *GraphOverlay {
	if state == nil {
		return nil
	}
	return &GraphOverlay{
		VisitedNodes:   state.History,
		CurrentNode:    state.HitIntent,
		AvailableNodes: state.AvailableNodes,
	}
}

// GenerateMermaid produces a Mermaid flowchart from scenario nodes.
// Shapes:
// - Entry: ((Circle))
// - Action: [[Subroutine]]
// - Slot filling: [/Parallelogram/]
// - Default: [Rectangle]
// Required slots and the action are annotated in the label.
func GenerateMermaid(nodes []domain.Node, entries []string, overlay *GraphOverlay) string {
	entrySet := make(map[string]bool, len(entries))
	for _, id := range entries {
		entrySet[id] = true
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case entrySet[node.ID]:
			opener, closer = "((", "))"
		case node.Action != "":
			opener, closer = "[[", "]]"
		case len(node.Slots) > 0:
			opener, closer = "[/", "/]"
		}

		label := escapeLabel(node.ID)
		if len(node.Slots) > 0 {
			label += " <br/> 🧩 " + escapeLabel(strings.Join(node.Slots, ", "))
		}
		if node.Action != "" {
			label += " <br/> ⚙️ " + escapeLabel(node.Action)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		for _, child := range node.Children {
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, sanitizeMermaidID(child))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef available fill:#e8f5e9,stroke:#2e7d32,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		writeClass(&sb, overlay.VisitedNodes, "visited")
		writeClass(&sb, overlay.AvailableNodes, "available")
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids []string, class string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		safeID := sanitizeMermaidID(id)
		if safeID == "" || seen[safeID] {
			continue
		}
		seen[safeID] = true
		fmt.Fprintf(sb, "    class %s %s;\n", safeID, class)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
