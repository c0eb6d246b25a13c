package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, slug, created_by, title, description, deadline, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	var deadline any
	if job.Deadline != nil {
		deadline = *job.Deadline
	}
	var description any
	if job.Description != "" {
		description = job.Description
	}
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Slug,
		job.CreatedBy,
		job.Title,
		description,
		deadline,
	)
	return err
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	const query = `
SELECT id, slug, created_by, title, description, deadline, created_at, updated_at
FROM jobs
WHERE slug = $1
LIMIT 1`
	return scanJob(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *PGRepo) GetBySlugAndOwner(ctx context.Context, slug, ownerID string) (Job, error) {
	const query = `
SELECT id, slug, created_by, title, description, deadline, created_at, updated_at
FROM jobs
WHERE slug = $1 AND created_by = $2
LIMIT 1`
	return scanJob(r.DB.QueryRowContext(ctx, query, slug, ownerID))
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Job, error) {
	const query = `
SELECT id, slug, created_by, title, description, deadline, created_at, updated_at
FROM jobs
WHERE created_by = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row *sql.Row) (Job, error) {
	job, err := scanJobRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func scanJobRow(row rowScanner) (Job, error) {
	var job Job
	var description sql.NullString
	var deadline sql.NullTime
	var updatedAt sql.NullTime
	err := row.Scan(
		&job.ID,
		&job.Slug,
		&job.CreatedBy,
		&job.Title,
		&description,
		&deadline,
		&job.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	if description.Valid {
		job.Description = description.String
	}
	if deadline.Valid {
		d := deadline.Time
		job.Deadline = &d
	}
	if updatedAt.Valid {
		job.UpdatedAt = updatedAt.Time
	} else {
		job.UpdatedAt = time.Now().UTC()
	}
	return job, nil
}
