package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent/internal/runtime"
	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var entered, left []domain.NodeID
	var tools []string
	var finished []*domain.RunEvent

	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			entered = append(entered, e.NodeID)
		},
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			left = append(left, e.NodeID)
			require.NotNil(t, e.Message)
		},
		OnToolCall: func(_ context.Context, e *domain.ToolEvent) {
			tools = append(tools, e.ToolName)
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			finished = append(finished, e)
		},
	}

	gw := testutils.NewScriptedGateway(
		testutils.Decide("coder", "math"),
		testutils.CallTool("execute_code", map[string]any{"code": "print(2+2)"}),
		testutils.Say("4"),
		testutils.Decide("FINISH", "ok"),
	)
	engine := newEngine(t, gw, runtime.WithLifecycleHooks(hooks), runtime.WithRunIDGenerator(func() string { return "run-42" }))

	tr, err := engine.Run(context.Background(), "2+2=?")
	require.NoError(t, err)
	assert.Equal(t, "run-42", tr.RunID)

	want := []domain.NodeID{domain.NodeSupervisor, domain.NodeCoder, domain.NodeValidator}
	assert.Equal(t, want, entered)
	assert.Equal(t, want, left)
	assert.Equal(t, []string{"execute_code"}, tools)

	require.Len(t, finished, 1)
	assert.Equal(t, domain.StatusFinished, finished[0].Status)
	assert.Equal(t, "run-42", finished[0].RunID)
	assert.Equal(t, 4, finished[0].Messages)
	assert.NoError(t, finished[0].Err)
}

func TestEngine_ArchivesTranscripts(t *testing.T) {
	store := memory.NewStore()

	ok := testutils.NewScriptedGateway(
		testutils.Decide("researcher", "facts"),
		testutils.Say("sunny"),
		testutils.Decide("FINISH", "ok"),
	)
	engine := newEngine(t, ok, runtime.WithArchive(store), runtime.WithRunIDGenerator(func() string { return "good" }))
	_, err := engine.Run(context.Background(), "Weather in Chicago?")
	require.NoError(t, err)

	bad := testutils.NewScriptedGateway(testutils.Decide("painter", "?"))
	engine = newEngine(t, bad, runtime.WithArchive(store), runtime.WithRunIDGenerator(func() string { return "bad" }))
	_, err = engine.Run(context.Background(), "draw")
	require.Error(t, err)

	good, err := store.Load(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, good.Status)
	assert.Len(t, good.Messages, 4)

	failed, err := store.Load(context.Background(), "bad")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "schema violation")
}
