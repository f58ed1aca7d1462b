package ingestion

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Ingestion // id -> ingestion
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Ingestion)}
}

// Create stores a new ingestion job.
func (r *MemoryRepo) Create(ctx context.Context, ing Ingestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ing.ID] = ing
	return nil
}

// GetByID fetches an ingestion job by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Ingestion, error) {
	if err := ctx.Err(); err != nil {
		return Ingestion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ing, ok := r.data[id]
	if !ok {
		return Ingestion{}, ErrNotFound
	}
	return ing, nil
}

// List returns all ingestion jobs, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Ingestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Ingestion, 0, len(r.data))
	for _, ing := range r.data {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

// Update persists the status fields of an ingestion job.
func (r *MemoryRepo) Update(ctx context.Context, ing Ingestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[ing.ID]; !ok {
		return ErrNotFound
	}
	r.data[ing.ID] = ing
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
