package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document // id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Document)}
}

// Create stores a new document, enforcing title uniqueness.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Title == doc.Title {
			return ErrConflict
		}
	}
	r.data[doc.ID] = doc
	return nil
}

// List returns documents matching the optional case-insensitive search
// token against title, description, or author.
func (r *MemoryRepo) List(ctx context.Context, search string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	out := make([]Document, 0, len(r.data))
	for _, doc := range r.data {
		if needle != "" && !matches(doc, needle) {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID fetches a document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Update persists the mutable metadata fields of a document.
func (r *MemoryRepo) Update(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[doc.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.data {
		if id != doc.ID && other.Title == doc.Title {
			return ErrConflict
		}
	}
	existing.Title = doc.Title
	existing.Description = doc.Description
	existing.Author = doc.Author
	r.data[doc.ID] = existing
	return nil
}

// Delete removes a document by ID.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func matches(doc Document, needle string) bool {
	return strings.Contains(strings.ToLower(doc.Title), needle) ||
		strings.Contains(strings.ToLower(doc.Description), needle) ||
		strings.Contains(strings.ToLower(doc.Author), needle)
}

var _ Repo = (*MemoryRepo)(nil)
