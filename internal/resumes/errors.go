package resumes

import "errors"

// ErrNotFound indicates no resume profile exists for the user.
var ErrNotFound = errors.New("resume profile not found")
