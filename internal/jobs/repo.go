package jobs

import "context"

// Repo defines persistence operations for jobs.
//
// GetBySlugAndOwner returns ErrNotFound both when the slug does not exist and
// when the job belongs to a different recruiter, so callers cannot tell the
// two apart.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetBySlug(ctx context.Context, slug string) (Job, error)
	GetBySlugAndOwner(ctx context.Context, slug, ownerID string) (Job, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Job, error)
}
