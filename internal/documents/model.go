package documents

import "time"

// Document represents uploaded document metadata. FilePath is the storage
// locator returned by the object store and is always set before the row is
// persisted.
type Document struct {
	ID          string
	Title       string
	Description string
	Author      string
	FilePath    string
	CreatedAt   time.Time
}
