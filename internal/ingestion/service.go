package ingestion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docvault-backend/internal/shared/metrics"
)

// failureMessage is recorded when a job is marked failed.
const failureMessage = "An error occurred during ingestion"

// Service contains business logic for ingestion jobs.
type Service struct {
	Repo Repo
}

// Trigger starts a new ingestion job for the given document and returns
// its ID. The document ID is recorded as-is without a referential check.
func (s *Service) Trigger(ctx context.Context, documentID string) (Ingestion, error) {
	now := time.Now().UTC()
	ing := Ingestion{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Status:     StatusInProgress,
		StartedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, ing); err != nil {
		return Ingestion{}, err
	}
	metrics.IngestionTransitionsTotal.WithLabelValues(StatusInProgress).Inc()
	return ing, nil
}

// GetStatus fetches an ingestion job by ID.
func (s *Service) GetStatus(ctx context.Context, id string) (Ingestion, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListAll returns every ingestion job.
func (s *Service) ListAll(ctx context.Context) ([]Ingestion, error) {
	return s.Repo.List(ctx)
}

// Complete marks a job COMPLETED and stamps completedAt. Completing an
// already completed job is a no-op; a failed job cannot be completed.
func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusCompleted)
}

// Fail marks a job FAILED with a fixed error message. Failing an already
// failed job is a no-op; a completed job cannot be failed.
func (s *Service) Fail(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusFailed)
}

func (s *Service) transition(ctx context.Context, id, target string) error {
	ing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if Terminal(ing.Status) {
		if ing.Status == target {
			return nil
		}
		return ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	ing.Status = target
	ing.UpdatedAt = now
	switch target {
	case StatusCompleted:
		ing.CompletedAt = &now
		ing.ErrorMessage = ""
	case StatusFailed:
		ing.CompletedAt = nil
		ing.ErrorMessage = failureMessage
	}

	if err := s.Repo.Update(ctx, ing); err != nil {
		return err
	}
	metrics.IngestionTransitionsTotal.WithLabelValues(target).Inc()
	return nil
}
