package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/supraja777/multiagent/pkg/domain"
)

// ErrScriptExhausted is returned when a scripted gateway receives more calls than it has steps.
var ErrScriptExhausted = errors.New("scripted gateway: no more steps")

// Step produces the response to one gateway call.
type Step func(req domain.Request) (*domain.Response, error)

// ScriptedGateway replays a fixed sequence of responses and records every request.
type ScriptedGateway struct {
	mu    sync.Mutex
	steps []Step
	calls []domain.Request
}

// NewScriptedGateway creates a gateway that answers call i with steps[i].
func NewScriptedGateway(steps ...Step) *ScriptedGateway {
	return &ScriptedGateway{steps: steps}
}

// Complete implements ports.Gateway.
func (g *ScriptedGateway) Complete(ctx context.Context, req domain.Request) (*domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	i := len(g.calls)
	g.calls = append(g.calls, req)
	g.mu.Unlock()

	if i >= len(g.steps) {
		return nil, fmt.Errorf("%w (call %d)", ErrScriptExhausted, i+1)
	}
	return g.steps[i](req)
}

// Calls returns the requests received so far.
func (g *ScriptedGateway) Calls() []domain.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Request(nil), g.calls...)
}

// Decide answers a schema-constrained call with the given decision.
// It fails when the caller did not request a schema.
func Decide(next, reason string) Step {
	return func(req domain.Request) (*domain.Response, error) {
		if req.Schema == nil {
			return nil, fmt.Errorf("scripted gateway: expected a schema request, got free text")
		}
		return &domain.Response{Decision: &domain.Decision{Next: next, Reason: reason}}, nil
	}
}

// Say answers with free text.
func Say(text string) Step {
	return func(req domain.Request) (*domain.Response, error) {
		if req.Schema != nil {
			return nil, fmt.Errorf("scripted gateway: expected free text, got schema %q", req.Schema.Name)
		}
		return &domain.Response{Text: text}, nil
	}
}

// CallTool answers with a single tool call.
func CallTool(name string, args map[string]any) Step {
	return func(req domain.Request) (*domain.Response, error) {
		return &domain.Response{ToolCalls: []domain.ToolCall{{Name: name, Args: args}}}, nil
	}
}

// Fail answers with an error.
func Fail(err error) Step {
	return func(domain.Request) (*domain.Response, error) {
		return nil, err
	}
}

// Repeat returns step n times.
func Repeat(n int, step Step) []Step {
	out := make([]Step, n)
	for i := range out {
		out[i] = step
	}
	return out
}

// Steps flattens single steps and step slices into one script.
func Steps(parts ...any) []Step {
	var out []Step
	for _, p := range parts {
		switch v := p.(type) {
		case Step:
			out = append(out, v)
		case []Step:
			out = append(out, v...)
		default:
			panic(fmt.Sprintf("testutils.Steps: unsupported %T", p))
		}
	}
	return out
}

// MockTool is a testify mock implementing ports.ToolRunner.
type MockTool struct {
	mock.Mock
	Def domain.Tool
}

// NewMockTool creates a mock tool with the given name.
func NewMockTool(name string) *MockTool {
	return &MockTool{Def: domain.Tool{Name: name, Description: "mock " + name}}
}

// Definition implements ports.ToolRunner.
func (m *MockTool) Definition() domain.Tool { return m.Def }

// Execute implements ports.ToolRunner.
func (m *MockTool) Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error) {
	args := m.Called(ctx, call)
	return args.Get(0).(domain.ToolResult), args.Error(1)
}
