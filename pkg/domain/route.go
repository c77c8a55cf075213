package domain

import (
	"fmt"
	"strings"
)

// NodeID identifies a node of the routing graph.
type NodeID string

const (
	NodeSupervisor NodeID = "supervisor"
	NodeEnhancer   NodeID = "enhancer"
	NodeResearcher NodeID = "researcher"
	NodeCoder      NodeID = "coder"
	NodeValidator  NodeID = "validator"

	// NodeEnd is the terminal signal. It is not a runnable node.
	NodeEnd NodeID = "__end__"
)

// SupervisorRoute is the closed set of workers the Supervisor may dispatch to.
type SupervisorRoute string

const (
	RouteEnhancer   SupervisorRoute = "enhancer"
	RouteResearcher SupervisorRoute = "researcher"
	RouteCoder      SupervisorRoute = "coder"
)

// SupervisorChoices lists the literal values of the Supervisor's schema.
func SupervisorChoices() []string {
	return []string{string(RouteEnhancer), string(RouteResearcher), string(RouteCoder)}
}

// ParseSupervisorRoute maps a raw decision to a route, rejecting anything
// outside the declared set.
func ParseSupervisorRoute(raw string) (SupervisorRoute, error) {
	switch SupervisorRoute(strings.ToLower(strings.TrimSpace(raw))) {
	case RouteEnhancer:
		return RouteEnhancer, nil
	case RouteResearcher:
		return RouteResearcher, nil
	case RouteCoder:
		return RouteCoder, nil
	}
	return "", &SchemaViolationError{Field: "next", Value: raw, Allowed: SupervisorChoices()}
}

// Node returns the graph node the route dispatches to.
func (r SupervisorRoute) Node() NodeID {
	return NodeID(r)
}

// Verdict is the Validator's closed decision set.
type Verdict string

const (
	// VerdictContinue sends control back to the Supervisor.
	VerdictContinue Verdict = "continue"
	// VerdictFinish terminates the run.
	VerdictFinish Verdict = "finish"
)

// Literal values offered to the model by the Validator's schema.
const (
	ValidatorChoiceSupervisor = "supervisor"
	ValidatorChoiceFinish     = "FINISH"
)

// ValidatorChoices lists the literal values of the Validator's schema.
func ValidatorChoices() []string {
	return []string{ValidatorChoiceSupervisor, ValidatorChoiceFinish}
}

// ParseVerdict maps a raw decision to a verdict. FINISH and END are both
// accepted as the terminal signal.
func ParseVerdict(raw string) (Verdict, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUPERVISOR":
		return VerdictContinue, nil
	case "FINISH", "END":
		return VerdictFinish, nil
	}
	return "", &SchemaViolationError{Field: "next", Value: raw, Allowed: ValidatorChoices()}
}

// Node returns the graph node the verdict leads to.
func (v Verdict) Node() NodeID {
	if v == VerdictFinish {
		return NodeEnd
	}
	return NodeSupervisor
}

// DecisionSchema constrains a gateway call to a structured routing decision.
type DecisionSchema struct {
	// Name is the identifier exposed to the model (function or schema name).
	Name string
	// Description explains the decision to the model.
	Description string
	// Choices is the closed domain of the "next" field.
	Choices []string
	// NextDescription documents the "next" field.
	NextDescription string
	// ReasonDescription documents the "reason" field.
	ReasonDescription string
}

// Allows reports whether value belongs to the schema's domain.
// Matching ignores case and surrounding blanks.
func (s DecisionSchema) Allows(value string) bool {
	value = strings.TrimSpace(value)
	for _, c := range s.Choices {
		if strings.EqualFold(c, value) {
			return true
		}
	}
	return false
}

// Decision is a structured routing answer: a choice plus its rationale.
type Decision struct {
	Next   string `json:"next" mapstructure:"next"`
	Reason string `json:"reason" mapstructure:"reason"`
}

// Validate checks the decision against the schema it was requested with.
func (d Decision) Validate(schema DecisionSchema) error {
	if !schema.Allows(d.Next) {
		return &SchemaViolationError{Schema: schema.Name, Field: "next", Value: d.Next, Allowed: schema.Choices}
	}
	if strings.TrimSpace(d.Reason) == "" {
		return &SchemaViolationError{Schema: schema.Name, Field: "reason", Value: d.Reason}
	}
	return nil
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	return fmt.Sprintf("%s (%s)", d.Next, d.Reason)
}
