package documents

import (
	"context"
	"database/sql"
	"errors"

	storagedb "docvault-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document. Duplicate titles surface as ErrConflict.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, title, description, author, file_path, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.Author,
		doc.FilePath,
		doc.CreatedAt,
	)
	if err != nil {
		if storagedb.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// List returns documents, optionally filtered by a case-insensitive
// substring match against title, description, or author.
func (r *PGRepo) List(ctx context.Context, search string) ([]Document, error) {
	const listAll = `
SELECT id, title, description, author, file_path, created_at
FROM documents`
	const listFiltered = `
SELECT id, title, description, author, file_path, created_at
FROM documents
WHERE title ILIKE $1 OR description ILIKE $1 OR author ILIKE $1`

	var (
		rows *sql.Rows
		err  error
	)
	if search == "" {
		rows, err = r.DB.QueryContext(ctx, listAll)
	} else {
		rows, err = r.DB.QueryContext(ctx, listFiltered, "%"+search+"%")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Description,
			&doc.Author,
			&doc.FilePath,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, title, description, author, file_path, created_at
FROM documents
WHERE id = $1
LIMIT 1`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Description,
		&doc.Author,
		&doc.FilePath,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Update persists the mutable metadata fields of a document.
func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $1, description = $2, author = $3
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, doc.Title, doc.Description, doc.Author, doc.ID)
	if err != nil {
		if storagedb.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by ID. ErrNotFound when no row matched.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
