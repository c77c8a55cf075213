package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/pkg/domain"
)

func newServer(t *testing.T, status int, results []Result) (*httptest.Server, *searchRequest) {
	t.Helper()
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(searchResponse{Results: results})
		} else {
			_, _ = w.Write([]byte("quota exceeded"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestExecute_CapsResults(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, []Result{
		{Title: "a", URL: "https://a"}, {Title: "b", URL: "https://b"}, {Title: "c", URL: "https://c"},
	})
	c := New(Config{APIKey: "secret", BaseURL: srv.URL})

	res, err := c.Execute(context.Background(), domain.ToolCall{ID: "1", Name: ToolName, Args: map[string]any{"query": "Weather in Chicago?"}})
	require.NoError(t, err)
	require.False(t, res.IsError, res.Error)

	hits, ok := res.Result.([]Result)
	require.True(t, ok)
	assert.Len(t, hits, DefaultMaxResults)
	assert.Equal(t, "Weather in Chicago?", got.Query)
	assert.Equal(t, DefaultMaxResults, got.MaxResults)
}

func TestExecute_ErrorsAreResults(t *testing.T) {
	srv, _ := newServer(t, http.StatusTooManyRequests, nil)
	c := New(Config{APIKey: "secret", BaseURL: srv.URL})

	res, err := c.Execute(context.Background(), domain.ToolCall{Args: map[string]any{"query": "x"}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Error, "429")
	assert.Contains(t, res.Error, "quota exceeded")

	res, err = c.Execute(context.Background(), domain.ToolCall{Args: map[string]any{}})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = New(Config{}).Execute(context.Background(), domain.ToolCall{Args: map[string]any{"query": "x"}})
	require.NoError(t, err)
	assert.Contains(t, res.Error, "api key")
}

func TestDefinition(t *testing.T) {
	def := New(Config{MaxResults: 5}).Definition()
	assert.Equal(t, ToolName, def.Name)
	assert.Contains(t, def.Description, "5")
	assert.Equal(t, []string{"query"}, def.Parameters["required"])
}
