package submissions

import (
	"context"
	"time"
)

// ListFilter selects submissions for one job. Status is an internal status
// value; empty means no status restriction. Unknown values simply match
// nothing.
type ListFilter struct {
	JobID  string
	Status string
	Limit  int
	Offset int
}

// Repo defines persistence operations for submissions.
//
// List orders by ats_score descending then submitted_at descending; Count
// applies the same filter without pagination. UpdateStatus matches on the
// (submissionID, jobID) compound key and returns ErrApplicationNotFound when
// no row matches.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
	List(ctx context.Context, filter ListFilter) ([]Submission, error)
	Count(ctx context.Context, jobID, status string) (int, error)
	UpdateStatus(ctx context.Context, submissionID, jobID, status string, updatedAt time.Time) (Submission, error)
}
