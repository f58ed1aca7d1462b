package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/storage/object"
	"docvault-backend/internal/shared/telemetry"
)

// Metadata carries the caller-supplied fields for a new document.
type Metadata struct {
	Title       string
	Description string
	Author      string
}

// Partial carries a partial metadata update; nil fields are left unchanged.
type Partial struct {
	Title       *string
	Description *string
	Author      *string
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file blob to object storage, then records the document
// metadata with the returned locator. If the metadata insert fails the
// stored blob is deleted best-effort so no orphan is left behind.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader, meta Metadata) (Document, error) {
	if fileName == "" || meta.Title == "" || meta.Description == "" || meta.Author == "" {
		return Document{}, ErrInvalidInput
	}

	start := time.Now()
	storageKey, _, _, err := s.Store.Save(ctx, fileName, r)
	if err != nil {
		metrics.UploadErrorsTotal.WithLabelValues("storage").Inc()
		return Document{}, fmt.Errorf("error uploading file: %w", err)
	}

	doc := Document{
		ID:          uuid.NewString(),
		Title:       meta.Title,
		Description: meta.Description,
		Author:      meta.Author,
		FilePath:    storageKey,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			logger := telemetry.Get()
			logger.Warn().
				Err(delErr).
				Str("storage_key", storageKey).
				Msg("orphaned blob after failed persist")
		}
		if errors.Is(err, ErrConflict) {
			metrics.UploadErrorsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.UploadErrorsTotal.WithLabelValues("persist").Inc()
		}
		return Document{}, err
	}

	metrics.DocumentsUploadedTotal.Inc()
	metrics.UploadDuration.Observe(time.Since(start).Seconds())
	return doc, nil
}

// FindAll returns documents matching the optional free-text search token.
func (s *Service) FindAll(ctx context.Context, search string) ([]Document, error) {
	return s.Repo.List(ctx, search)
}

// GetByID fetches a document by ID. ErrNotFound propagates from the repo.
func (s *Service) GetByID(ctx context.Context, id string) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// Update applies a partial update over the existing record and persists it.
func (s *Service) Update(ctx context.Context, id string, partial Partial) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	if partial.Title != nil {
		doc.Title = *partial.Title
	}
	if partial.Description != nil {
		doc.Description = *partial.Description
	}
	if partial.Author != nil {
		doc.Author = *partial.Author
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Remove deletes a document by ID. ErrNotFound propagates from the repo.
// The stored blob is left in place, matching delete semantics for metadata
// only.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Open streams a stored document blob.
func (s *Service) Open(ctx context.Context, id string) (io.ReadCloser, Document, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, Document{}, err
	}
	rc, err := s.Store.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, Document{}, fmt.Errorf("open stored file: %w", err)
	}
	return rc, doc, nil
}
