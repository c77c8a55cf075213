package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/supraja777/multiagent/internal/presentation/tui"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

var errArchiveDisabled = errors.New("run archive is disabled (archive.backend is none)")

// openArchive returns the configured archive and a release function.
func openArchive(configPath string) (ports.TranscriptStore, func(), error) {
	cfg, err := loadConfig(configPath, false)
	if err != nil {
		return nil, nil, err
	}
	archive, closeArchive, err := newArchive(cfg)
	if err != nil {
		return nil, nil, err
	}
	if archive == nil {
		return nil, nil, errArchiveDisabled
	}
	release := func() {
		if closeArchive != nil {
			_ = closeArchive()
		}
	}
	return archive, release, nil
}

// ListRuns prints the archived run IDs with their status.
func ListRuns(ctx context.Context, configPath string, w io.Writer) error {
	archive, release, err := openArchive(configPath)
	if err != nil {
		return err
	}
	defer release()
	return listRuns(ctx, archive, w)
}

func listRuns(ctx context.Context, archive ports.TranscriptStore, w io.Writer) error {
	runs, err := archive.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived runs found.")
		return nil
	}

	fmt.Fprintln(w, "Archived Runs:")
	for _, id := range runs {
		t, err := archive.Load(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "- %s (unreadable: %v)\n", id, err)
			continue
		}
		fmt.Fprintf(w, "- %s %s cycles=%d\n", id, tui.Status(string(t.Status), t.Status == domain.StatusFinished), t.Cycles)
	}
	return nil
}

// InspectRun prints one archived transcript as indented JSON.
func InspectRun(ctx context.Context, configPath, runID string, w io.Writer) error {
	archive, release, err := openArchive(configPath)
	if err != nil {
		return err
	}
	defer release()
	return inspectRun(ctx, archive, runID, w)
}

func inspectRun(ctx context.Context, archive ports.TranscriptStore, runID string, w io.Writer) error {
	t, err := archive.Load(ctx, runID)
	if err != nil {
		return fmt.Errorf("error loading run '%s': %w", runID, err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling transcript: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// RemoveRuns deletes archived runs. It keeps going past failures and
// reports them together.
func RemoveRuns(ctx context.Context, configPath string, runIDs []string, w io.Writer) error {
	archive, release, err := openArchive(configPath)
	if err != nil {
		return err
	}
	defer release()
	return removeRuns(ctx, archive, runIDs, w)
}

func removeRuns(ctx context.Context, archive ports.TranscriptStore, runIDs []string, w io.Writer) error {
	var errs []error
	for _, id := range runIDs {
		if err := archive.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(w, "Removed run '%s'\n", id)
	}
	return errors.Join(errs...)
}
