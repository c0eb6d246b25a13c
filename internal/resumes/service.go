package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for resume profiles.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateEmptyProfile creates the empty resume profile that accompanies a new
// applicant account.
func (s *Service) CreateEmptyProfile(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("resumes service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	now := time.Now().UTC()
	return s.Repo.Create(ctx, Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Versions:  []Version{},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Profile returns the resume profile for a user.
func (s *Service) Profile(ctx context.Context, userID string) (Resume, error) {
	if s == nil || s.Repo == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Resume{}, errors.New("user id is required")
	}
	return s.Repo.GetByUser(ctx, userID)
}

// AddVersion records an uploaded resume file against the user's profile.
func (s *Service) AddVersion(ctx context.Context, userID, fileName, fileURL string, sizeBytes int64) error {
	if s == nil || s.Repo == nil {
		return errors.New("resumes service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	return s.Repo.AppendVersion(ctx, userID, Version{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FileURL:    fileURL,
		SizeBytes:  sizeBytes,
		UploadedAt: time.Now().UTC(),
	})
}
