package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/auth"
	"jobtrack-backend/internal/shared/telemetry"
)

// Service contains registration and login logic.
type Service struct {
	Repo    Repo
	Resumes *resumes.Service
}

func NewService(repo Repo, resumeSvc *resumes.Service) *Service {
	return &Service{Repo: repo, Resumes: resumeSvc}
}

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	Role     string
}

// Register validates and persists a new account. When the resolved role is
// applicant, an empty resume profile is created after the user record; the
// two writes are independent and a failed second write is surfaced, not
// rolled back.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return User{}, validationError("name must be at least 2 characters")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, validationError("a valid email is required")
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = RoleApplicant
	}
	switch role {
	case RoleHR, RoleApplicant:
	default:
		return User{}, validationError("role must be hr or applicant")
	}

	company := strings.TrimSpace(in.Company)
	if role == RoleHR {
		if len(company) < 2 {
			return User{}, validationError("company name is required for recruiter accounts")
		}
		if len(in.Password) < 6 {
			return User{}, validationError("a password of at least 6 characters is required for recruiter accounts")
		}
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	var passwordHash string
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		passwordHash = string(hashed)
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Company:      company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	if role == RoleApplicant {
		if err := s.Resumes.CreateEmptyProfile(ctx, user.ID); err != nil {
			// The user record already exists at this point; there is no
			// compensating delete.
			telemetry.Error("register.resume_profile_failed", map[string]any{
				"user_id": user.ID,
				"err":     err.Error(),
			})
			return User{}, err
		}
	}

	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", validationError("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if user.PasswordHash == "" {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID returns a user by id.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
