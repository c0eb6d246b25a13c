package users

import "time"

// Roles an account can hold.
const (
	RoleHR        = "hr"
	RoleApplicant = "applicant"
)

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	Company      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
