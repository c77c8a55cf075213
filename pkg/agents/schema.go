package agents

import (
	"errors"
	"strings"

	"github.com/supraja777/multiagent/pkg/domain"
)

// SupervisorSchema is the structured output requested from the Supervisor.
func SupervisorSchema() domain.DecisionSchema {
	return domain.DecisionSchema{
		Name:        "route",
		Description: "Select the next worker in the pipeline.",
		Choices:     domain.SupervisorChoices(),
		NextDescription: "Specifies the next worker in the pipeline: " +
			"'enhancer' for enhancing the user prompt if it is unclear or vague, " +
			"'researcher' for additional information gathering, " +
			"'coder' for solving technical or code-related problems.",
		ReasonDescription: "The reason for the decision, providing context on why a particular worker was chosen.",
	}
}

// ValidatorSchema is the structured output requested from the Validator.
func ValidatorSchema() domain.DecisionSchema {
	return domain.DecisionSchema{
		Name:              "validate",
		Description:       "Decide whether the answer resolves the question.",
		Choices:           domain.ValidatorChoices(),
		NextDescription:   "Specifies the next step: 'supervisor' to continue or 'FINISH' to terminate.",
		ReasonDescription: "The reason for the decision.",
	}
}

var errNoDecision = errors.New("gateway returned no structured decision")

// decisionOf extracts the decision of a schema-constrained response and
// checks that it carries a rationale. The routing value is parsed by the caller.
func decisionOf(resp *domain.Response, schema domain.DecisionSchema) (domain.Decision, error) {
	if resp == nil || resp.Decision == nil {
		return domain.Decision{}, &domain.SchemaViolationError{Schema: schema.Name, Cause: errNoDecision}
	}
	d := *resp.Decision
	if strings.TrimSpace(d.Reason) == "" {
		return domain.Decision{}, &domain.SchemaViolationError{Schema: schema.Name, Field: "reason", Value: d.Reason}
	}
	return d, nil
}

func withSchema(err error, schema string) error {
	var sv *domain.SchemaViolationError
	if errors.As(err, &sv) && sv.Schema == "" {
		sv.Schema = schema
	}
	return err
}
