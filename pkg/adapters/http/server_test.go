package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/dsl"
)

// MockEngine for testing
type MockEngine struct {
	RunFunc func(ctx context.Context, request string) (*domain.Transcript, error)
}

func (m *MockEngine) Run(ctx context.Context, request string) (*domain.Transcript, error) {
	return m.RunFunc(ctx, request)
}

func (m *MockEngine) Graph() *domain.Graph { return dsl.Topology() }

func finished(request string) *domain.Transcript {
	return &domain.Transcript{
		RunID:   "run-1",
		Request: request,
		Status:  domain.StatusFinished,
		Messages: []domain.Message{
			{Index: 0, Author: domain.AuthorUser, Content: request},
			{Index: 1, Author: domain.AuthorSupervisor, Content: "arithmetic"},
			{Index: 2, Author: domain.AuthorCoder, Content: "4"},
			{Index: 3, Author: domain.AuthorValidator, Content: "correct"},
		},
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateRun(t *testing.T) {
	var got string
	h := NewHandler(&MockEngine{RunFunc: func(ctx context.Context, request string) (*domain.Transcript, error) {
		got = request
		return finished(request), nil
	}})

	w := do(t, h, http.MethodPost, "/runs", `{"request":"  2+2=?  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2+2=?", got)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4", resp.Answer)
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.Transcript)
	assert.Len(t, resp.Transcript.Messages, 4)
}

func TestCreateRun_HaltedRun(t *testing.T) {
	h := NewHandler(&MockEngine{RunFunc: func(ctx context.Context, request string) (*domain.Transcript, error) {
		tr := finished(request)
		tr.Status = domain.StatusFailed
		tr.Error = "cycle limit exceeded"
		return tr, &domain.CycleLimitError{Limit: 5}
	}})

	w := do(t, h, http.MethodPost, "/runs", `{"request":"loop"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "cycle limit")
	require.NotNil(t, resp.Transcript)
	assert.Equal(t, domain.StatusFailed, resp.Transcript.Status)
}

func TestCreateRun_BadInput(t *testing.T) {
	called := false
	h := NewHandler(&MockEngine{RunFunc: func(ctx context.Context, request string) (*domain.Transcript, error) {
		called = true
		return nil, errors.New("unreachable")
	}})

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/runs", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/runs", `{"request":"   "}`).Code)
	assert.False(t, called)
}

func TestCreateRun_NoTranscript(t *testing.T) {
	h := NewHandler(&MockEngine{RunFunc: func(ctx context.Context, request string) (*domain.Transcript, error) {
		return nil, errors.New("boom")
	}})
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodPost, "/runs", `{"request":"x"}`).Code)
}

func TestRuns_Archive(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), finished("2+2=?")))
	h := NewHandler(&MockEngine{}, WithStore(store))

	w := do(t, h, http.MethodGet, "/runs/run-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tr domain.Transcript
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tr))
	assert.Equal(t, "run-1", tr.RunID)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/runs/missing", "").Code)

	w = do(t, h, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs":["run-1"]}`, w.Body.String())
}

func TestRuns_NoArchive(t *testing.T) {
	h := NewHandler(&MockEngine{})

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/runs/run-1", "").Code)

	w := do(t, h, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs":[]}`, w.Body.String())
}

func TestGetGraph(t *testing.T) {
	h := NewHandler(&MockEngine{})

	w := do(t, h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph TD")

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var g domain.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, domain.NodeSupervisor, g.Entry)
	assert.Len(t, g.Nodes, 5)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("multiagent_runs_total 0\n"))
	})
	h := NewHandler(&MockEngine{}, WithMetrics(metrics), WithVersion("1.2.3"))

	w := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "multiagent_runs_total")

	assert.Equal(t, http.StatusNotFound, do(t, NewHandler(&MockEngine{}), http.MethodGet, "/metrics", "").Code)
}
