package ports

import (
	"context"

	"github.com/supraja777/multiagent/pkg/domain"
)

// TranscriptStore archives the transcripts of terminated runs for audit.
// Runs are never resumed from it.
type TranscriptStore interface {
	// Save persists the transcript under its run ID, replacing any previous copy.
	Save(ctx context.Context, transcript *domain.Transcript) error

	// Load retrieves a transcript.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Transcript, error)

	// Delete removes a transcript. Deleting a missing run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the archived run IDs.
	List(ctx context.Context) ([]string, error)
}
