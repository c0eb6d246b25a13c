package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Versions are stored as a JSONB array.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, is_anonymous, versions, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	payload, err := marshalVersions(resume.Versions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.IsAnonymous,
		payload,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT id, user_id, is_anonymous, versions, created_at, updated_at
FROM resumes
WHERE user_id = $1
LIMIT 1`
	var resume Resume
	var versions []byte
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.IsAnonymous,
		&versions,
		&resume.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if len(versions) > 0 {
		if err := json.Unmarshal(versions, &resume.Versions); err != nil {
			return Resume{}, err
		}
	}
	if resume.Versions == nil {
		resume.Versions = []Version{}
	}
	if updatedAt.Valid {
		resume.UpdatedAt = updatedAt.Time
	} else {
		resume.UpdatedAt = time.Now().UTC()
	}
	return resume, nil
}

func (r *PGRepo) AppendVersion(ctx context.Context, userID string, version Version) error {
	const query = `
UPDATE resumes
SET versions = versions || $2::jsonb, updated_at = now()
WHERE user_id = $1`
	payload, err := json.Marshal(version)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, userID, payload)
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

func marshalVersions(versions []Version) ([]byte, error) {
	if versions == nil {
		versions = []Version{}
	}
	return json.Marshal(versions)
}
