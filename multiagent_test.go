package multiagent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent"
	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/agents"
	"github.com/supraja777/multiagent/pkg/domain"
)

func TestNew_RequiresGateway(t *testing.T) {
	_, err := multiagent.New(nil)
	assert.Error(t, err)
}

func TestEngine_Defaults(t *testing.T) {
	eng, err := multiagent.New(testutils.NewScriptedGateway())
	require.NoError(t, err)
	assert.Equal(t, 10, eng.MaxCycles())
	assert.Nil(t, eng.Archive())
	assert.Len(t, eng.Graph().Nodes, 5)
}

func TestEngine_PromptOverride(t *testing.T) {
	gw := testutils.NewScriptedGateway(
		testutils.Decide("researcher", "facts"),
		testutils.Say("sunny"),
		testutils.Decide("FINISH", "ok"),
	)
	store := memory.NewStore()
	eng, err := multiagent.New(gw,
		multiagent.WithPrompts(agents.Prompts{Researcher: "only say the weather"}),
		multiagent.WithArchive(store),
		multiagent.WithMaxCycles(3),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, eng.MaxCycles())

	tr, err := eng.Run(context.Background(), "Weather in Chicago?")
	require.NoError(t, err)

	calls := gw.Calls()
	assert.Equal(t, "only say the weather", calls[1].Messages[0].Content)
	assert.True(t, strings.HasPrefix(calls[0].Messages[0].Content, "You are a workflow supervisor"),
		"unset prompts keep their defaults")

	archived, err := store.Load(context.Background(), tr.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, archived.Status)
}
