package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFromConfig(t *testing.T) {
	debug := FromConfig("debug", "json")
	assert.True(t, debug.Enabled(context.Background(), slog.LevelDebug))
	_, isJSON := debug.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)

	text := FromConfig("warn", "")
	assert.False(t, text.Enabled(context.Background(), slog.LevelInfo))
	_, isText := text.Handler().(*slog.TextHandler)
	assert.True(t, isText)
}

func TestNewNop(t *testing.T) {
	assert.NotNil(t, NewNop())
}
