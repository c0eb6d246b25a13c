package users

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

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, name, email, phone, password_hash, role, company, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		nullableString(user.Phone),
		nullableString(user.PasswordHash),
		user.Role,
		nullableString(user.Company),
	)
	return err
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, phone, password_hash, role, company, created_at, updated_at
FROM users
WHERE lower(email) = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, name, email, phone, password_hash, role, company, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var phone sql.NullString
	var passwordHash sql.NullString
	var company sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&phone,
		&passwordHash,
		&user.Role,
		&company,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if company.Valid {
		user.Company = company.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
