/*
Package dsl provides a fluent builder for declaring routing graphs in Go.

Edges are declared once, here, and the orchestrator rejects any hop a node
returns that is not one of them. Topology returns the graph every run uses.

Example usage:

	b := dsl.New().Start(domain.NodeSupervisor)

	b.Add(domain.NodeSupervisor).
		Decider().
		Branch("next == coder", domain.NodeCoder)

	b.Add(domain.NodeCoder).
		Worker().
		Go(domain.NodeValidator)

	b.Add(domain.NodeValidator).
		Gate().
		Branch("next == supervisor", domain.NodeSupervisor).
		End("next == FINISH")

	graph, err := b.Build()
*/
package dsl
