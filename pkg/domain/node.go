package domain

// NodeKind constants describe the role a node plays in the graph.
const (
	// NodeKindDecider asks the model for a structured routing decision.
	NodeKindDecider = "decider"
	// NodeKindWorker performs one bounded unit of work and has a fixed successor.
	NodeKindWorker = "worker"
	// NodeKindGate validates the latest answer and decides to loop or terminate.
	NodeKindGate = "gate"
)

// Node is the static declaration of a graph node: its kind and the edges
// it is allowed to follow.
type Node struct {
	ID          NodeID       `json:"id" yaml:"id"`
	Kind        string       `json:"kind" yaml:"kind"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// Terminal reports whether the node may hand control to the end signal.
func (n Node) Terminal() bool {
	for _, t := range n.Transitions {
		if t.ToNodeID == NodeEnd {
			return true
		}
	}
	return false
}

// Graph is the declared topology of a run.
type Graph struct {
	Entry NodeID `json:"entry" yaml:"entry"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node looks up a node declaration by ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Allows reports whether an edge from -> to is declared.
func (g *Graph) Allows(from, to NodeID) bool {
	n, ok := g.Node(from)
	if !ok {
		return false
	}
	for _, t := range n.Transitions {
		if t.ToNodeID == to {
			return true
		}
	}
	return false
}
