package agents

import (
	"context"
	"fmt"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// Validator judges whether the latest message answers the original request.
type Validator struct {
	gateway ports.Gateway
	opts    options
	schema  domain.DecisionSchema
}

// NewValidator creates the gate node.
func NewValidator(gateway ports.Gateway, opts ...Option) *Validator {
	return &Validator{
		gateway: gateway,
		opts:    newOptions(validatorPrompt, opts),
		schema:  ValidatorSchema(),
	}
}

// ID implements ports.Node.
func (v *Validator) ID() domain.NodeID { return domain.NodeValidator }

// Run sends only the question and the latest answer to the model, appends
// its rationale, and either loops back to the Supervisor or terminates.
func (v *Validator) Run(ctx context.Context, conv *domain.Conversation) (ports.Turn, error) {
	question, err := conv.First()
	if err != nil {
		return ports.Turn{}, err
	}
	answer, err := conv.Last()
	if err != nil {
		return ports.Turn{}, err
	}

	resp, err := v.gateway.Complete(ctx, domain.Request{
		Messages: []domain.PromptMessage{
			domain.SystemPrompt(v.opts.prompt),
			{Role: domain.RoleUser, Content: question.Content},
			{Role: domain.RoleAssistant, Content: answer.Content},
		},
		Schema: &v.schema,
	})
	if err != nil {
		return ports.Turn{}, fmt.Errorf("validator inference: %w", err)
	}

	decision, err := decisionOf(resp, v.schema)
	if err != nil {
		return ports.Turn{}, err
	}
	verdict, err := domain.ParseVerdict(decision.Next)
	if err != nil {
		return ports.Turn{}, withSchema(err, v.schema.Name)
	}

	msg, err := conv.Append(domain.AuthorValidator, domain.RoleUser, decision.Reason)
	if err != nil {
		return ports.Turn{}, err
	}
	v.opts.logger.Debug("validator verdict", "verdict", verdict, "reason", decision.Reason)
	return ports.Turn{Message: msg, Next: verdict.Node()}, nil
}
