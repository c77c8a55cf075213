package dsl

import (
	"fmt"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	entry domain.NodeID
	order []domain.NodeID
	nodes map[domain.NodeID]*NodeBuilder
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[domain.NodeID]*NodeBuilder),
	}
}

// Start declares the entry edge of the graph.
func (b *Builder) Start(id domain.NodeID) *Builder {
	b.entry = id
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id domain.NodeID) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the declared nodes into a graph.
// Nodes keep their declaration order.
func (b *Builder) Build() (*domain.Graph, error) {
	if b.entry == "" {
		return nil, fmt.Errorf("graph has no entry node")
	}
	if _, ok := b.nodes[b.entry]; !ok {
		return nil, fmt.Errorf("entry %q: %w", b.entry, domain.ErrUnknownNode)
	}

	g := &domain.Graph{Entry: b.entry, Nodes: make([]domain.Node, 0, len(b.order))}
	for _, id := range b.order {
		n := b.nodes[id].node
		if n.Kind == "" {
			return nil, fmt.Errorf("node %q has no kind", id)
		}
		for i := range n.Transitions {
			n.Transitions[i].FromNodeID = id
			to := n.Transitions[i].ToNodeID
			if to == domain.NodeEnd {
				continue
			}
			if _, ok := b.nodes[to]; !ok {
				return nil, fmt.Errorf("edge %s -> %s: %w", id, to, domain.ErrUnknownNode)
			}
		}
		g.Nodes = append(g.Nodes, n)
	}
	return g, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
