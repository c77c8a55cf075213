package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/domain"
)

// MockIOHandler captures system output and replays canned input.
type MockIOHandler struct {
	System        []string
	InputBehavior func() (string, error)
}

func (m *MockIOHandler) Input(ctx context.Context) (string, error) {
	if m.InputBehavior != nil {
		return m.InputBehavior()
	}
	return "", nil
}

func (m *MockIOHandler) Turn(ctx context.Context, event *domain.NodeEvent) error { return nil }

func (m *MockIOHandler) Result(ctx context.Context, transcript *domain.Transcript, runErr error) error {
	return nil
}

func (m *MockIOHandler) SystemOutput(ctx context.Context, msg string) error {
	m.System = append(m.System, msg)
	return nil
}

func TestConfirmationMiddleware_Allow(t *testing.T) {
	handler := &MockIOHandler{InputBehavior: func() (string, error) { return "y\n", nil }}

	allowed, _, err := ConfirmationMiddleware(handler)(context.Background(), domain.ToolCall{ID: "1", Name: "execute_code"})
	require.NoError(t, err)
	assert.True(t, allowed)
	require.Len(t, handler.System, 1)
	assert.Contains(t, handler.System[0], "Allow execution?")
}

func TestConfirmationMiddleware_Deny(t *testing.T) {
	handler := &MockIOHandler{InputBehavior: func() (string, error) { return "n\n", nil }}

	allowed, res, err := ConfirmationMiddleware(handler)(context.Background(), domain.ToolCall{ID: "1", Name: "execute_code"})
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.True(t, res.IsError)
	assert.Equal(t, "User denied execution by policy", res.Error)
}

func TestMultiInterceptor(t *testing.T) {
	denyAll := func(ctx context.Context, call domain.ToolCall) (bool, domain.ToolResult, error) {
		return false, domain.ToolResult{Error: "Denied"}, nil
	}

	chain := MultiInterceptor(AutoApproveMiddleware(), denyAll, AutoApproveMiddleware())

	allowed, res, err := chain(context.Background(), domain.ToolCall{})
	require.NoError(t, err)
	assert.False(t, allowed, "MultiInterceptor should stop at first denial")
	assert.Equal(t, "Denied", res.Error)
}

func TestGuard(t *testing.T) {
	call := domain.ToolCall{ID: "c1", Name: "execute_code", Args: map[string]any{"code": "print(4)"}}

	t.Run("Allowed", func(t *testing.T) {
		tool := testutils.NewMockTool("execute_code")
		tool.On("Execute", mock.Anything, call).Return(domain.ToolResult{ID: "c1", Result: "4"}, nil).Once()

		res, err := Guard(tool, AutoApproveMiddleware()).Execute(context.Background(), call)
		require.NoError(t, err)
		assert.Equal(t, "4", res.Result)
		tool.AssertExpectations(t)
	})

	t.Run("Denied", func(t *testing.T) {
		tool := testutils.NewMockTool("execute_code")
		handler := &MockIOHandler{InputBehavior: func() (string, error) { return "no", nil }}

		guarded := Guard(tool, ConfirmationMiddleware(handler))
		assert.Equal(t, "execute_code", guarded.Definition().Name)

		res, err := guarded.Execute(context.Background(), call)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		tool.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("Nil Tool", func(t *testing.T) {
		assert.Nil(t, Guard(nil, AutoApproveMiddleware()))
	})
}
