package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// ToolInterceptor is a middleware that can intercept or block a tool call.
// It returns true if execution should proceed. When it blocks, the returned
// ToolResult describes the denial and is handed to the model.
type ToolInterceptor func(ctx context.Context, call domain.ToolCall) (bool, domain.ToolResult, error)

// MultiInterceptor chains multiple interceptors; the first denial wins.
func MultiInterceptor(interceptors ...ToolInterceptor) ToolInterceptor {
	return func(ctx context.Context, call domain.ToolCall) (bool, domain.ToolResult, error) {
		for _, interceptor := range interceptors {
			allowed, result, err := interceptor(ctx, call)
			if err != nil {
				return false, domain.ToolResult{}, err
			}
			if !allowed {
				return false, result, nil
			}
		}
		return true, domain.ToolResult{}, nil
	}
}

// ConfirmationMiddleware asks the user through handler before every call.
func ConfirmationMiddleware(handler IOHandler) ToolInterceptor {
	return func(ctx context.Context, call domain.ToolCall) (bool, domain.ToolResult, error) {
		msg := fmt.Sprintf("Tool Request: '%s' (ID: %s)\nArgs: %v\nAllow execution? [y/N]", call.Name, call.ID, call.Args)
		if err := handler.SystemOutput(ctx, msg); err != nil {
			return false, domain.ToolResult{}, err
		}

		input, err := handler.Input(ctx)
		if err != nil {
			return false, domain.ToolResult{}, err
		}

		input = strings.TrimSpace(strings.ToLower(input))
		if input == "y" || input == "yes" {
			return true, domain.ToolResult{}, nil
		}

		return false, domain.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			IsError: true,
			Error:   "User denied execution by policy",
		}, nil
	}
}

// AutoApproveMiddleware allows everything.
func AutoApproveMiddleware() ToolInterceptor {
	return func(ctx context.Context, call domain.ToolCall) (bool, domain.ToolResult, error) {
		return true, domain.ToolResult{}, nil
	}
}

// Guard wraps a tool so that every call passes through interceptor first.
// A nil tool stays nil.
func Guard(tool ports.ToolRunner, interceptor ToolInterceptor) ports.ToolRunner {
	if tool == nil || interceptor == nil {
		return tool
	}
	return &guardedTool{next: tool, interceptor: interceptor}
}

type guardedTool struct {
	next        ports.ToolRunner
	interceptor ToolInterceptor
}

func (g *guardedTool) Definition() domain.Tool {
	return g.next.Definition()
}

func (g *guardedTool) Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error) {
	allowed, denial, err := g.interceptor(ctx, call)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("tool interceptor error: %w", err)
	}
	if !allowed {
		return denial, nil
	}
	return g.next.Execute(ctx, call)
}
