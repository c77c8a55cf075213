package dsl

import (
	"fmt"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Topology returns the supervisor-routed graph every run follows:
//
//	start -> supervisor
//	supervisor -> enhancer | researcher | coder
//	enhancer -> supervisor
//	researcher, coder -> validator
//	validator -> supervisor | end
func Topology() *domain.Graph {
	b := New().Start(domain.NodeSupervisor)

	sup := b.Add(domain.NodeSupervisor).
		Decider().
		Describe("Routes the task to the worker best suited for the next step")
	for _, r := range domain.SupervisorChoices() {
		sup.Branch(fmt.Sprintf("next == %s", r), domain.NodeID(r))
	}

	b.Add(domain.NodeEnhancer).
		Worker().
		Describe("Rewrites vague requests into precise tasks").
		Go(domain.NodeSupervisor)

	b.Add(domain.NodeResearcher).
		Worker().
		Describe("Answers with web search results").
		Go(domain.NodeValidator)

	b.Add(domain.NodeCoder).
		Worker().
		Describe("Answers by writing and running code").
		Go(domain.NodeValidator)

	b.Add(domain.NodeValidator).
		Gate().
		Describe("Judges whether the latest answer resolves the question").
		Branch("next == supervisor", domain.NodeSupervisor).
		End("next == FINISH")

	return b.MustBuild()
}
