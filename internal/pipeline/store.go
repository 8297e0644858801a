package pipeline

import (
	"errors"
	"sync"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// ErrRunNotFound is returned when a run ID is unknown to the store.
var ErrRunNotFound = errors.New("run not found")

// Run is the store's view of one analysis: its status plus, once finished,
// the result.
type Run struct {
	ID     string           `json:"id"`
	Status string           `json:"status"`
	Result *types.RunResult `json:"result,omitempty"`
}

// Store tracks in-flight and completed runs in memory. Safe for concurrent
// use.
type Store struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewStore creates an empty run store.
func NewStore() *Store {
	return &Store{runs: make(map[string]Run)}
}

// Create registers a run in the running state.
func (s *Store) Create(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = Run{ID: id, Status: types.StatusRunning}
}

// Complete records the finished result. The status comes from the result.
func (s *Store) Complete(id string, result types.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = Run{ID: id, Status: result.Status, Result: &result}
}

// Get returns the run for id, or ErrRunNotFound.
func (s *Store) Get(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

// Delete removes the run for id, or returns ErrRunNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return ErrRunNotFound
	}
	delete(s.runs, id)
	return nil
}
