package scrape

import (
	"context"
	"errors"
	"sync"
)

// ErrTaskNotFound is returned for unknown or expired task ids.
var ErrTaskNotFound = errors.New("scrape task not found")

// TaskStore is the single durable holder of task records, shared between
// the submission path and the worker. Each task is only ever written by
// one worker invocation, so last-writer-wins update semantics suffice.
type TaskStore interface {
	Create(ctx context.Context, t Task) error
	Get(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps tasks in a mutex-guarded map. It backs tests and
// deployments without Redis; records live until process exit.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

func (s *MemoryStore) Create(ctx context.Context, t Task) error {
	return s.put(t)
}

func (s *MemoryStore) Update(ctx context.Context, t Task) error {
	return s.put(t)
}

func (s *MemoryStore) put(t Task) error {
	if s == nil {
		return errors.New("nil task store")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if s == nil {
		return errors.New("nil task store")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Task, error) {
	if s == nil {
		return Task{}, errors.New("nil task store")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t.Clone(), nil
}
