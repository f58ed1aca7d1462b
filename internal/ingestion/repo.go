package ingestion

import "context"

// Repo abstracts persistence for ingestion jobs.
type Repo interface {
	Create(ctx context.Context, ing Ingestion) error
	GetByID(ctx context.Context, id string) (Ingestion, error)
	List(ctx context.Context) ([]Ingestion, error)
	Update(ctx context.Context, ing Ingestion) error
}
