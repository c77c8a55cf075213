package domain

// Transition declares an edge from one node to another.
type Transition struct {
	FromNodeID NodeID `json:"from_node_id,omitempty" yaml:"from,omitempty"`
	ToNodeID   NodeID `json:"to_node_id" yaml:"to,omitempty"`

	// Condition is a human-readable label of when the edge is taken,
	// e.g. "next == coder". Empty means the edge is unconditional.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}
