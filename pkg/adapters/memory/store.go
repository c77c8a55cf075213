package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Store implements ports.TranscriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Transcript
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Transcript),
	}
}

// Save keeps a private copy of the transcript.
func (s *Store) Save(ctx context.Context, transcript *domain.Transcript) error {
	copied := transcript.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[transcript.RunID] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored transcript.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return tr.Clone(), nil
}

// Delete removes the transcript.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns archived runs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.data[ids[i]], s.data[ids[j]]
		if a.StartedAt.Equal(b.StartedAt) {
			return ids[i] < ids[j]
		}
		return a.StartedAt.Before(b.StartedAt)
	})
	return ids, nil
}
