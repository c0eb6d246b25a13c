package jobs

import "errors"

// ErrNotFound covers both a missing job and a job owned by another recruiter.
// Callers must not distinguish the two cases.
var ErrNotFound = errors.New("job not found")

// ErrInvalidInput indicates validation or bad input.
var ErrInvalidInput = errors.New("invalid input")
