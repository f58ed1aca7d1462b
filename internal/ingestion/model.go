package ingestion

import "time"

// Ingestion job statuses.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Ingestion tracks the processing state of one document ingestion run.
type Ingestion struct {
	ID           string
	DocumentID   string
	Status       string
	StartedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	ErrorMessage string
}

// Terminal reports whether the status admits no further transitions.
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}
