package runner

import (
	"context"

	"github.com/supraja777/multiagent/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next request. io.EOF ends the session.
	Input(ctx context.Context) (string, error)

	// Turn presents the message a node just appended.
	Turn(ctx context.Context, event *domain.NodeEvent) error

	// Result presents a finished or failed run.
	Result(ctx context.Context, transcript *domain.Transcript, runErr error) error

	// SystemOutput presents a meta-message (confirmations, status updates),
	// distinct from the conversation itself.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms content before it is printed, e.g. Markdown to ANSI.
type ContentRenderer func(string) (string, error)
