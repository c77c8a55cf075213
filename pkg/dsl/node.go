package dsl

import "github.com/supraja777/multiagent/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Decider marks the node as one asking the model for a structured route.
func (n *NodeBuilder) Decider() *NodeBuilder {
	n.node.Kind = domain.NodeKindDecider
	return n
}

// Worker marks the node as a worker with a fixed successor.
func (n *NodeBuilder) Worker() *NodeBuilder {
	n.node.Kind = domain.NodeKindWorker
	return n
}

// Gate marks the node as the answer gate that loops or terminates.
func (n *NodeBuilder) Gate() *NodeBuilder {
	n.node.Kind = domain.NodeKindGate
	return n
}

// Describe sets a human-readable description, used by graph renderers.
func (n *NodeBuilder) Describe(text string) *NodeBuilder {
	n.node.Description = text
	return n
}

// Go adds an unconditional transition to the target node.
func (n *NodeBuilder) Go(target domain.NodeID) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		ToNodeID: target,
	})
	return n
}

// Branch adds a conditional transition to the target node.
func (n *NodeBuilder) Branch(condition string, target domain.NodeID) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		Condition: condition,
		ToNodeID:  target,
	})
	return n
}

// End adds a conditional transition to the terminal signal.
func (n *NodeBuilder) End(condition string) *NodeBuilder {
	return n.Branch(condition, domain.NodeEnd)
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
