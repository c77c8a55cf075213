// Package agents implements the five nodes of the routing graph: the
// Supervisor, the Validator and the three workers (Enhancer, Researcher,
// Coder) that share a single Worker shell.
//
// Every node receives its Gateway and tools at construction time and talks
// to the outside world only through them.
package agents
