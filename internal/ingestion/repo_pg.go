package ingestion

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new ingestion job.
func (r *PGRepo) Create(ctx context.Context, ing Ingestion) error {
	const query = `
INSERT INTO ingestions (id, document_id, status, started_at, updated_at, completed_at, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		ing.ID,
		ing.DocumentID,
		ing.Status,
		ing.StartedAt,
		ing.UpdatedAt,
		ing.CompletedAt,
		nullableString(ing.ErrorMessage),
	)
	return err
}

// GetByID fetches an ingestion job by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Ingestion, error) {
	const query = `
SELECT id, document_id, status, started_at, updated_at, completed_at, error_message
FROM ingestions
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// List returns all ingestion jobs, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Ingestion, error) {
	const query = `
SELECT id, document_id, status, started_at, updated_at, completed_at, error_message
FROM ingestions
ORDER BY started_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingestion
	for rows.Next() {
		var (
			ing    Ingestion
			errMsg sql.NullString
		)
		if err := rows.Scan(
			&ing.ID,
			&ing.DocumentID,
			&ing.Status,
			&ing.StartedAt,
			&ing.UpdatedAt,
			&ing.CompletedAt,
			&errMsg,
		); err != nil {
			return nil, err
		}
		ing.ErrorMessage = errMsg.String
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Update persists the status fields of an ingestion job.
func (r *PGRepo) Update(ctx context.Context, ing Ingestion) error {
	const query = `
UPDATE ingestions
SET status = $1, updated_at = $2, completed_at = $3, error_message = $4
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query,
		ing.Status,
		ing.UpdatedAt,
		ing.CompletedAt,
		nullableString(ing.ErrorMessage),
		ing.ID,
	)
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

func (r *PGRepo) scanOne(row *sql.Row) (Ingestion, error) {
	var (
		ing    Ingestion
		errMsg sql.NullString
	)
	err := row.Scan(
		&ing.ID,
		&ing.DocumentID,
		&ing.Status,
		&ing.StartedAt,
		&ing.UpdatedAt,
		&ing.CompletedAt,
		&errMsg,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ingestion{}, ErrNotFound
		}
		return Ingestion{}, err
	}
	ing.ErrorMessage = errMsg.String
	return ing, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
