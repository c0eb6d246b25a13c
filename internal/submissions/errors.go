package submissions

import "errors"

var (
	// ErrInvalidStatus indicates a requested status outside the external vocabulary.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrApplicationNotFound indicates no submission matched the
	// (applicationId, jobId) compound key.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
