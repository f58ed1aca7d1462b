package ingestion

import "time"

// IngestionResponse is the outward-facing representation of an ingestion job.
type IngestionResponse struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"documentId"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"startedAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

func toResponse(ing Ingestion) IngestionResponse {
	return IngestionResponse{
		ID:           ing.ID,
		DocumentID:   ing.DocumentID,
		Status:       ing.Status,
		StartedAt:    ing.StartedAt,
		UpdatedAt:    ing.UpdatedAt,
		CompletedAt:  ing.CompletedAt,
		ErrorMessage: ing.ErrorMessage,
	}
}
