package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/pkg/domain"
)

func decodeEvents(t *testing.T, buf *bytes.Buffer) []Event {
	t.Helper()
	var events []Event
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev), "every line must be a JSON object")
		events = append(events, ev)
	}
	return events
}

func TestJSONHandler_Stream(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewJSONHandler(strings.NewReader(""), out)
	ctx := context.Background()

	ev := leave(domain.NodeCoder, domain.AuthorCoder, "4")
	ev.RunID = "r1"
	ev.Next = domain.NodeValidator
	require.NoError(t, h.Turn(ctx, ev))
	require.NoError(t, h.Result(ctx, &domain.Transcript{RunID: "r1", Status: domain.StatusFailed}, errors.New("boom")))

	events := decodeEvents(t, out)
	require.Len(t, events, 2)

	assert.Equal(t, EventTurn, events[0].Type)
	assert.Equal(t, domain.NodeCoder, events[0].Node)
	assert.Equal(t, domain.NodeValidator, events[0].Next)
	require.NotNil(t, events[0].Message)
	assert.Equal(t, "4", events[0].Message.Content)

	assert.Equal(t, EventResult, events[1].Type)
	assert.Equal(t, "r1", events[1].RunID)
	assert.Equal(t, "boom", events[1].Error)
	require.NotNil(t, events[1].Transcript)
	assert.Equal(t, domain.StatusFailed, events[1].Transcript.Status)
}

func TestJSONHandler_Input(t *testing.T) {
	h := NewJSONHandler(strings.NewReader("\"quoted request\"\n\nraw request\n"), &bytes.Buffer{})

	val, err := h.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "quoted request", val)

	val, err = h.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "raw request", val)

	_, err = h.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}
