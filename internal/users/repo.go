package users

import "context"

// Repo defines persistence operations for users. Emails passed to GetByEmail
// must already be lowercased by the caller.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
