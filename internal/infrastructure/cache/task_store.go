package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

const taskKeyPrefix = "scrape:task:"

// TaskStore keeps scrape task records in Redis so status survives a
// process restart and is visible across replicas. Records expire after
// the configured TTL; an expired id reads as not found, same as an
// unknown one.
type TaskStore struct {
	redis *Redis
	ttl   time.Duration
}

func NewTaskStore(r *Redis, ttl time.Duration) *TaskStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TaskStore{redis: r, ttl: ttl}
}

func taskKey(id string) string {
	return taskKeyPrefix + id
}

func (s *TaskStore) Create(ctx context.Context, t scrape.Task) error {
	return s.put(ctx, t)
}

func (s *TaskStore) Update(ctx context.Context, t scrape.Task) error {
	return s.put(ctx, t)
}

func (s *TaskStore) put(ctx context.Context, t scrape.Task) error {
	if err := s.redis.SetJSON(ctx, taskKey(t.ID), t, s.ttl); err != nil {
		return fmt.Errorf("store scrape task %s: %w", t.ID, err)
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Delete(ctx, taskKey(id)); err != nil {
		return fmt.Errorf("delete scrape task %s: %w", id, err)
	}
	return nil
}

func (s *TaskStore) Get(ctx context.Context, id string) (scrape.Task, error) {
	var t scrape.Task
	ok, err := s.redis.GetJSON(ctx, taskKey(id), &t)
	if err != nil {
		return scrape.Task{}, fmt.Errorf("load scrape task %s: %w", id, err)
	}
	if !ok {
		return scrape.Task{}, scrape.ErrTaskNotFound
	}
	return t, nil
}
