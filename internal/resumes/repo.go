package resumes

import "context"

// Repo defines persistence operations for resume profiles.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByUser(ctx context.Context, userID string) (Resume, error)
	AppendVersion(ctx context.Context, userID string, version Version) error
}
