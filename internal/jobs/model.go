package jobs

import "time"

// Job is a posting owned by exactly one recruiter. All mutations to its
// submissions must verify CreatedBy against the acting recruiter.
type Job struct {
	ID          string
	Slug        string
	CreatedBy   string
	Title       string
	Description string
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
