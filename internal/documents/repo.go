package documents

import "context"

// Repo defines persistence operations for document metadata.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	List(ctx context.Context, search string) ([]Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id string) error
}
