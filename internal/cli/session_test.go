package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/internal/logging"
	"github.com/supraja777/multiagent/internal/testutils"
)

func TestRunSession_JSONSingleRequest(t *testing.T) {
	cfg := testConfig(t)
	gw := testutils.NewScriptedGateway(
		testutils.Decide("researcher", "needs facts"),
		testutils.Say("Paris"),
		testutils.Decide("FINISH", "correct"),
	)
	out := &bytes.Buffer{}

	err := runSession(context.Background(), cfg, RunOptions{
		Request: "capital of France?",
		JSON:    true,
		Stdin:   strings.NewReader(""),
		Stdout:  out,
	}, FactoryOptions{Gateway: gw, Logger: logging.NewNop()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"node":"supervisor"`)
	assert.Contains(t, lines[3], `"type":"result"`)
	assert.Contains(t, lines[3], "Paris")
}

func TestRunSession_InteractiveTextPrintsBanner(t *testing.T) {
	cfg := testConfig(t)
	out := &bytes.Buffer{}

	err := runSession(context.Background(), cfg, RunOptions{
		Stdin:  strings.NewReader("exit\n"),
		Stdout: out,
	}, FactoryOptions{Gateway: testutils.NewScriptedGateway(), Logger: logging.NewNop()})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "|___/")
	assert.Contains(t, out.String(), "[System] Type a request")
}

func TestRunSession_MissingKeyFails(t *testing.T) {
	cfg := testConfig(t)

	err := runSession(context.Background(), cfg, RunOptions{
		Request: "hi",
		JSON:    true,
		Stdin:   strings.NewReader(""),
		Stdout:  &bytes.Buffer{},
	}, FactoryOptions{Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "no API key")
}
