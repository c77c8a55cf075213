package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent/pkg/domain"
)

// RunTranscriptStoreContract runs a suite of tests to verify that a
// TranscriptStore implementation adheres to the defined interface contract.
func RunTranscriptStoreContract(t *testing.T, store TranscriptStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newTranscript := func(id string) *domain.Transcript {
		return &domain.Transcript{
			RunID:   id,
			Request: "2+2=?",
			Messages: []domain.Message{
				{Index: 0, Author: domain.AuthorUser, Role: domain.RoleUser, Content: "2+2=?"},
				{Index: 1, Author: domain.AuthorSupervisor, Role: domain.RoleUser, Content: "arithmetic task"},
				{Index: 2, Author: domain.AuthorCoder, Role: domain.RoleUser, Content: "4"},
			},
			Path:      []domain.NodeID{domain.NodeSupervisor, domain.NodeCoder},
			Cycles:    1,
			Status:    domain.StatusFinished,
			StartedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		tr := newTranscript(runID)

		err := store.Save(ctx, tr)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, tr.RunID, loaded.RunID)
		assert.Equal(t, tr.Status, loaded.Status)
		require.Len(t, loaded.Messages, 3)
		assert.Equal(t, domain.AuthorCoder, loaded.Messages[2].Author)
		assert.Equal(t, "4", loaded.Messages[2].Content)
		assert.Equal(t, tr.Path, loaded.Path)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		tr := newTranscript(runID)
		tr.Status = domain.StatusFailed
		tr.Error = "boom"
		require.NoError(t, store.Save(ctx, tr))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, loaded.Status)
		assert.Equal(t, "boom", loaded.Error)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newTranscript(runID)))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, newTranscript(id1))
		_ = store.Save(ctx, newTranscript(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
