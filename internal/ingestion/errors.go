package ingestion

import "errors"

var (
	// ErrNotFound indicates the ingestion job does not exist.
	ErrNotFound = errors.New("ingestion not found")

	// ErrAlreadyFinalized indicates the job already reached the other
	// terminal state and cannot transition again.
	ErrAlreadyFinalized = errors.New("ingestion already finalized")
)
