package middleware_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/persistence/middleware"
	"github.com/supraja777/multiagent/pkg/ports"
)

func TestRedactMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware(middleware.DefaultSecretPatterns)
	require.NoError(t, err)
	store := mw(underlying)

	ctx := context.Background()
	tr := &domain.Transcript{
		RunID:   "r1",
		Request: "use key gsk_abcdefghijklmnopqrstuvwx please",
		Messages: []domain.Message{
			{Index: 0, Author: domain.AuthorUser, Content: "use key gsk_abcdefghijklmnopqrstuvwx please"},
			{Index: 1, Author: domain.AuthorResearcher, Content: "contact jane.doe@example.com for details"},
			{Index: 2, Author: domain.AuthorValidator, Content: "fine"},
		},
	}

	require.NoError(t, store.Save(ctx, tr))

	assert.Contains(t, tr.Messages[0].Content, "gsk_", "the caller's transcript must not be modified")

	stored, err := underlying.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "use key *** please", stored.Request)
	assert.Equal(t, "use key *** please", stored.Messages[0].Content)
	assert.Equal(t, "contact *** for details", stored.Messages[1].Content)
	assert.Equal(t, "fine", stored.Messages[2].Content)
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestRedactMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewRedactMiddleware(nil)
	require.NoError(t, err)
	ports.RunTranscriptStoreContract(t, middleware.Chain(memory.NewStore(), mw))
}
