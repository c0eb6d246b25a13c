package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for job postings.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput is the payload for a new job posting.
type CreateInput struct {
	Title       string
	Description string
	Deadline    *time.Time
}

// Create persists a new job owned by the acting recruiter.
func (s *Service) Create(ctx context.Context, recruiterID string, in CreateInput) (Job, error) {
	title := strings.TrimSpace(in.Title)
	if len(title) < 2 {
		return Job{}, fmt.Errorf("%w: title must be at least 2 characters", ErrInvalidInput)
	}

	now := time.Now().UTC()
	job := Job{
		ID:          uuid.NewString(),
		Slug:        slugify(title),
		CreatedBy:   recruiterID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// GetBySlug returns a job by its public slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (Job, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.GetBySlug(ctx, slug)
}

// ListOwn returns the acting recruiter's jobs, newest first.
func (s *Service) ListOwn(ctx context.Context, recruiterID string) ([]Job, error) {
	return s.Repo.ListByOwner(ctx, recruiterID)
}
