package users

import "errors"

var (
	// ErrNotFound indicates no user matched the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates the normalized email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the first violated registration rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationError(msg string) error {
	return &ValidationError{Message: msg}
}
