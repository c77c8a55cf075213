package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent/pkg/domain"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New().Start("a")

	b.Add("a").Worker().Describe("first").Go("b")
	b.Add("b").Gate().Branch("retry", "a").End("done")

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if g.Entry != "a" {
		t.Errorf("Expected entry 'a', got '%s'", g.Entry)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != "a" || g.Nodes[1].ID != "b" {
		t.Errorf("Expected declaration order [a b], got [%s %s]", g.Nodes[0].ID, g.Nodes[1].ID)
	}

	a, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, domain.NodeKindWorker, a.Kind)
	assert.Equal(t, "first", a.Description)
	require.Len(t, a.Transitions, 1)
	assert.Equal(t, domain.NodeID("a"), a.Transitions[0].FromNodeID)
	assert.False(t, a.Terminal())

	bn, ok := g.Node("b")
	require.True(t, ok)
	assert.True(t, bn.Terminal())
	assert.Equal(t, "retry", bn.Transitions[0].Condition)
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := New().Start("a")
	b.Add("a").Worker().Go(domain.NodeEnd)
	b.Add("a").Describe("same node")

	g, err := b.Build()
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "same node", g.Nodes[0].Description)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("No Entry", func(t *testing.T) {
		b := New()
		b.Add("a").Worker()
		_, err := b.Build()
		assert.Error(t, err)
	})

	t.Run("Unknown Entry", func(t *testing.T) {
		b := New().Start("ghost")
		b.Add("a").Worker()
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrUnknownNode)
	})

	t.Run("Broken Edge", func(t *testing.T) {
		b := New().Start("a")
		b.Add("a").Worker().Go("ghost")
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrUnknownNode)
	})

	t.Run("Missing Kind", func(t *testing.T) {
		b := New().Start("a")
		b.Add("a").Go(domain.NodeEnd)
		_, err := b.Build()
		assert.Error(t, err)
	})

	t.Run("MustBuild Panics", func(t *testing.T) {
		assert.Panics(t, func() { New().MustBuild() })
	})
}

func TestTopology(t *testing.T) {
	g := Topology()

	assert.Equal(t, domain.NodeSupervisor, g.Entry)
	assert.Len(t, g.Nodes, 5)

	for _, r := range domain.SupervisorChoices() {
		assert.True(t, g.Allows(domain.NodeSupervisor, domain.NodeID(r)), "supervisor -> %s", r)
	}
	assert.False(t, g.Allows(domain.NodeSupervisor, domain.NodeValidator))
	assert.False(t, g.Allows(domain.NodeSupervisor, domain.NodeEnd))

	assert.True(t, g.Allows(domain.NodeEnhancer, domain.NodeSupervisor))
	assert.False(t, g.Allows(domain.NodeEnhancer, domain.NodeValidator))

	assert.True(t, g.Allows(domain.NodeResearcher, domain.NodeValidator))
	assert.True(t, g.Allows(domain.NodeCoder, domain.NodeValidator))
	assert.False(t, g.Allows(domain.NodeCoder, domain.NodeSupervisor))

	assert.True(t, g.Allows(domain.NodeValidator, domain.NodeSupervisor))
	assert.True(t, g.Allows(domain.NodeValidator, domain.NodeEnd))

	v, ok := g.Node(domain.NodeValidator)
	require.True(t, ok)
	assert.True(t, v.Terminal())
	assert.Equal(t, domain.NodeKindGate, v.Kind)
}
