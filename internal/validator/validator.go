package validator

import (
	"fmt"
	"strings"

	"github.com/supraja777/multiagent/pkg/domain"
)

// ValidateGraph checks for broken links, unreachable nodes and the absence
// of any path to the terminal signal, starting from the graph's entry.
func ValidateGraph(g *domain.Graph) error {
	if g == nil {
		return fmt.Errorf("graph is nil")
	}
	if _, ok := g.Node(g.Entry); !ok {
		return fmt.Errorf("start node '%s' not found: %w", g.Entry, domain.ErrUnknownNode)
	}

	visited := make(map[domain.NodeID]bool)
	queue := []domain.NodeID{g.Entry}
	reachesEnd := false

	var errors []string

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := g.Node(currentID)
		if !ok {
			errors = append(errors, fmt.Sprintf("Missing node: '%s'", currentID))
			continue
		}

		if len(node.Transitions) == 0 {
			errors = append(errors, fmt.Sprintf("Dead end: '%s' has no outgoing edge", currentID))
		}

		for _, t := range node.Transitions {
			if t.ToNodeID == domain.NodeEnd {
				reachesEnd = true
				continue
			}
			if !visited[t.ToNodeID] {
				queue = append(queue, t.ToNodeID)
			}
		}
	}

	for _, n := range g.Nodes {
		if !visited[n.ID] {
			errors = append(errors, fmt.Sprintf("Unreachable node: '%s'", n.ID))
		}
	}
	if !reachesEnd {
		errors = append(errors, "No node leads to the end signal")
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
