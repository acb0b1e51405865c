package memory

import (
	"context"
	"sync"

	"eventplanner/internal/domain"
)

type kvRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVRepository returns a process-local KVStore.
func NewKVRepository() domain.KVStore {
	return &kvRepository{data: make(map[string]string)}
}

func (r *kvRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *kvRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}
