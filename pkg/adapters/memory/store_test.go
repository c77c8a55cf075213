package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTranscriptStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	tr := &domain.Transcript{RunID: "r1", Messages: []domain.Message{{Content: "original"}}}
	require.NoError(t, store.Save(ctx, tr))
	tr.Messages[0].Content = "mutated after save"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "original", loaded.Messages[0].Content)

	loaded.Messages[0].Content = "mutated after load"
	again, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Messages[0].Content)
}
