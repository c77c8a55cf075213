package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
	"github.com/supraja777/multiagent/pkg/registry"
)

// toolLoop is a worker's reasoning loop: call the model, run the tools it
// asks for, feed the results back, and stop at the first tool-free answer.
// Only the final answer leaves the loop; tool traces never reach the log.
type toolLoop struct {
	gateway   ports.Gateway
	tools     []ports.ToolRunner
	maxRounds int
	logger    *slog.Logger
}

func (l *toolLoop) run(ctx context.Context, prompt []domain.PromptMessage) (string, error) {
	tools, err := registry.New(l.tools...)
	if err != nil {
		return "", err
	}
	defs := tools.Definitions()

	messages := append([]domain.PromptMessage(nil), prompt...)
	for round := 0; ; round++ {
		resp, err := l.gateway.Complete(ctx, domain.Request{Messages: messages, Tools: defs})
		if err != nil {
			return "", fmt.Errorf("inference: %w", err)
		}
		if resp == nil {
			return "", fmt.Errorf("inference: empty response")
		}
		if len(resp.ToolCalls) == 0 {
			return resp.Text, nil
		}
		if round >= l.maxRounds {
			return "", fmt.Errorf("%w (%d rounds)", domain.ErrToolLoopExhausted, l.maxRounds)
		}

		calls := make([]domain.ToolCall, len(resp.ToolCalls))
		for i, call := range resp.ToolCalls {
			if call.ID == "" {
				call.ID = uuid.NewString()
			}
			calls[i] = call
		}
		messages = append(messages, domain.PromptMessage{
			Role:      domain.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: calls,
		})

		for _, call := range calls {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			result := l.execute(ctx, tools, call)
			messages = append(messages, domain.PromptMessage{
				Role:       domain.RoleTool,
				Name:       call.Name,
				Content:    renderResult(result),
				ToolCallID: call.ID,
			})
		}
	}
}

// execute never fails the loop: errors are returned to the model as an
// error result so it can correct itself.
func (l *toolLoop) execute(ctx context.Context, tools *registry.Registry, call domain.ToolCall) domain.ToolResult {
	if !tools.Has(call.Name) {
		l.logger.Warn("model requested unknown tool", "tool", call.Name)
		return domain.ToolResult{ID: call.ID, Name: call.Name, IsError: true, Error: fmt.Sprintf("unknown tool %q", call.Name)}
	}

	domain.EmitToolCall(ctx, call.Name, call.Args)
	start := time.Now()
	result, err := tools.Execute(ctx, call)
	elapsed := time.Since(start)
	if err != nil {
		terr := &domain.ToolExecutionError{Tool: call.Name, Cause: err}
		l.logger.Warn("tool execution failed", "tool", call.Name, "err", terr)
		result = domain.ToolResult{IsError: true, Error: terr.Error()}
	}
	result.ID = call.ID
	result.Name = call.Name

	if result.IsError {
		domain.EmitToolReturn(ctx, call.Name, result.Error, true, elapsed)
	} else {
		domain.EmitToolReturn(ctx, call.Name, result.Result, false, elapsed)
	}
	return result
}

func renderResult(r domain.ToolResult) string {
	if r.IsError {
		return "error: " + r.Error
	}
	switch v := r.Result.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	}
	b, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Sprint(r.Result)
	}
	return string(b)
}
