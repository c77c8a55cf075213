package agents

import (
	"context"
	"fmt"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// Supervisor routes the task to one of the three workers.
// It may be visited any number of times; the orchestrator bounds the visits.
type Supervisor struct {
	gateway ports.Gateway
	opts    options
	schema  domain.DecisionSchema
}

// NewSupervisor creates the routing node.
func NewSupervisor(gateway ports.Gateway, opts ...Option) *Supervisor {
	return &Supervisor{
		gateway: gateway,
		opts:    newOptions(supervisorPrompt, opts),
		schema:  SupervisorSchema(),
	}
}

// ID implements ports.Node.
func (s *Supervisor) ID() domain.NodeID { return domain.NodeSupervisor }

// Run asks the model for a route, appends its rationale and hands control
// to the chosen worker.
func (s *Supervisor) Run(ctx context.Context, conv *domain.Conversation) (ports.Turn, error) {
	resp, err := s.gateway.Complete(ctx, domain.Request{
		Messages: conv.Prompt(s.opts.prompt),
		Schema:   &s.schema,
	})
	if err != nil {
		return ports.Turn{}, fmt.Errorf("supervisor inference: %w", err)
	}

	decision, err := decisionOf(resp, s.schema)
	if err != nil {
		return ports.Turn{}, err
	}
	route, err := domain.ParseSupervisorRoute(decision.Next)
	if err != nil {
		return ports.Turn{}, withSchema(err, s.schema.Name)
	}

	msg, err := conv.Append(domain.AuthorSupervisor, domain.RoleUser, decision.Reason)
	if err != nil {
		return ports.Turn{}, err
	}
	s.opts.logger.Debug("supervisor decision", "next", route, "reason", decision.Reason)
	return ports.Turn{Message: msg, Next: route.Node()}, nil
}
