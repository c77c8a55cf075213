package graph

import (
	"fmt"
	"strings"

	"github.com/supraja777/multiagent/pkg/domain"
)

const (
	startID = "__start__"
	endID   = "__end__"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []domain.NodeID
	CurrentNode  domain.NodeID
}

// OverlayFromTranscript marks the nodes a run visited. The last visited
// node is highlighted when the run did not finish.
func OverlayFromTranscript(t *domain.Transcript) *GraphOverlay {
	if t == nil {
		return nil
	}
	o := &GraphOverlay{VisitedNodes: append([]domain.NodeID(nil), t.Path...)}
	if t.Status != domain.StatusFinished && len(t.Path) > 0 {
		o.CurrentNode = t.Path[len(t.Path)-1]
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of g.
// Shapes follow the node kind:
//   - Decider: {Rhombus}
//   - Gate: {{Hexagon}}
//   - Worker: [Rectangle]
//
// Start and end signals are drawn as circles.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    %s((\"START\"))\n", startID))
	sb.WriteString(fmt.Sprintf("    %s --> %s\n", startID, sanitizeMermaidID(g.Entry)))

	terminal := false
	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.NodeKindDecider:
			opener, closer = "{", "}"
		case domain.NodeKindGate:
			opener, closer = "{{", "}}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer))

		for _, t := range node.Transitions {
			safeTo := sanitizeMermaidID(t.ToNodeID)
			arrow := "-->"
			if t.ToNodeID == domain.NodeEnd {
				terminal = true
				safeTo = endID
			}
			if t.Condition != "" {
				safeCondition := strings.ReplaceAll(t.Condition, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", safeCondition)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}
	if terminal {
		sb.WriteString(fmt.Sprintf("    %s((\"END\"))\n", endID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id domain.NodeID) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(string(id))
}
