package object

import (
	"context"
	"fmt"
	"io"
	"time"

	"docvault-backend/internal/shared/util"
)

// ObjectStore defines the contract for saving, retrieving, and deleting
// binary objects. Save returns the storage key acting as the document's
// file path locator.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// BuildKey derives the storage key for an upload: a millisecond timestamp
// prefix joined to the sanitized original filename. The monotonically
// increasing prefix keeps concurrent uploads of the same filename from
// colliding.
func BuildKey(fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitized), nil
}
