package ports

import (
	"context"

	"github.com/supraja777/multiagent/pkg/domain"
)

// ToolRunner executes a side-effect requested by a worker's model.
// Failures that the model should see are returned inside the ToolResult
// (IsError); a non-nil error means the tool could not be invoked at all.
type ToolRunner interface {
	Definition() domain.Tool
	Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error)
}
