package runner_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent"
	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/runner"
)

func TestRunner_SingleRequest(t *testing.T) {
	gw := testutils.NewScriptedGateway(
		testutils.Decide("coder", "arithmetic task"),
		testutils.Say("4"),
		testutils.Decide("FINISH", "correct"),
	)
	out := &bytes.Buffer{}
	r := runner.New(runner.NewTextHandler(strings.NewReader(""), out))

	eng, err := multiagent.New(gw, multiagent.WithLifecycleHooks(r.Hooks()))
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), eng, "2+2=?"))

	got := out.String()
	assert.Contains(t, got, "Output from node 'supervisor':\narithmetic task")
	assert.Contains(t, got, "Output from node 'coder':\n4")
	assert.Contains(t, got, "Output from node 'validator':\ncorrect")
	assert.True(t, strings.HasSuffix(got, "4\n"), "the answer is printed last")
	assert.Less(t, strings.Index(got, "'supervisor'"), strings.Index(got, "'coder'"))
}

func TestRunner_Interactive(t *testing.T) {
	gw := testutils.NewScriptedGateway(
		testutils.Decide("researcher", "needs facts"),
		testutils.Say("Paris"),
		testutils.Decide("FINISH", "correct"),
	)
	out := &bytes.Buffer{}
	r := runner.New(runner.NewJSONHandler(strings.NewReader("capital of France?\nexit\nnever read\n"), out))

	eng, err := multiagent.New(gw, multiagent.WithLifecycleHooks(r.Hooks()))
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), eng, ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4, "three turns and one result")
	assert.Contains(t, lines[1], `"node":"researcher"`)
	assert.Contains(t, lines[3], `"type":"result"`)
	assert.Len(t, gw.Calls(), 3, "exit stops the session")
}

func TestRunner_FailedRunIsReported(t *testing.T) {
	gw := testutils.NewScriptedGateway() // exhausted at once
	out := &bytes.Buffer{}
	r := runner.New(runner.NewTextHandler(strings.NewReader(""), out))

	eng, err := multiagent.New(gw, multiagent.WithLifecycleHooks(r.Hooks()))
	require.NoError(t, err)

	err = r.Run(context.Background(), eng, "2+2=?")
	require.ErrorIs(t, err, testutils.ErrScriptExhausted)
	assert.Contains(t, out.String(), "Run failed after 1 cycle(s)")
}
