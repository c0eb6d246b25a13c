package submissions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/storage/object"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/internal/users"
)

// Service contains the submission pipeline: applying to a job, listing a
// job's applications, and moving an application through statuses.
type Service struct {
	Repo    Repo
	Jobs    jobs.Repo
	Users   users.Repo
	Resumes *resumes.Service
	Store   object.ObjectStore
}

// UpdateStatus sets an application's status to the requested external value.
// The job must exist and be owned by the acting recruiter; a missing job and
// a foreign job are indistinguishable to the caller. Single read-then-write,
// last write wins.
func (s *Service) UpdateStatus(ctx context.Context, recruiterID, slug, applicationID, externalStatus string) (ApplicationResponse, error) {
	internal, ok := InternalStatus(externalStatus)
	if !ok {
		return ApplicationResponse{}, fmt.Errorf("%w: %q", ErrInvalidStatus, externalStatus)
	}

	job, err := s.Jobs.GetBySlugAndOwner(ctx, slug, recruiterID)
	if err != nil {
		return ApplicationResponse{}, err
	}

	sub, err := s.Repo.UpdateStatus(ctx, applicationID, job.ID, internal, time.Now().UTC())
	if err != nil {
		return ApplicationResponse{}, err
	}

	return toResponse(sub, s.linkedUser(ctx, sub.ApplicantID)), nil
}

// ListQuery carries the listing parameters as received from the client.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

// List returns one page of a job's applications, best score first and most
// recent within equal scores. Total and page count cover the full filtered
// set regardless of the requested page.
func (s *Service) List(ctx context.Context, recruiterID, slug string, q ListQuery) ([]ApplicationResponse, Pagination, error) {
	job, err := s.Jobs.GetBySlugAndOwner(ctx, slug, recruiterID)
	if err != nil {
		return nil, Pagination{}, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	statusFilter := resolveStatusFilter(q.Status)

	total, err := s.Repo.Count(ctx, job.ID, statusFilter)
	if err != nil {
		return nil, Pagination{}, err
	}

	subs, err := s.Repo.List(ctx, ListFilter{
		JobID:  job.ID,
		Status: statusFilter,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	out := make([]ApplicationResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toResponse(sub, s.linkedUser(ctx, sub.ApplicantID)))
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return out, Pagination{Page: page, Pages: pages, Total: total, Limit: limit}, nil
}

// ApplyInput is one application to one job. File is optional; when present it
// is stored and its key recorded on the submission.
type ApplyInput struct {
	Slug        string
	ApplicantID string
	Name        string
	Email       string
	Phone       string
	FileName    string
	File        io.Reader
}

// Apply records a new submission for the job identified by slug. Anonymous
// applications are allowed; an authenticated applicant also gets the file
// appended to their resume profile.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (Submission, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Submission{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Email) == "" {
		return Submission{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	job, err := s.Jobs.GetBySlug(ctx, in.Slug)
	if err != nil {
		return Submission{}, err
	}

	var fileURL string
	var fileSize int64
	if in.File != nil && in.FileName != "" {
		owner := in.ApplicantID
		if owner == "" {
			owner = "anonymous"
		}
		key, size, _, err := s.Store.Save(ctx, owner, in.FileName, in.File)
		if err != nil {
			return Submission{}, err
		}
		fileURL = key
		fileSize = size
	}

	now := time.Now().UTC()
	sub := Submission{
		ID:              uuid.NewString(),
		JobID:           job.ID,
		ApplicantID:     in.ApplicantID,
		ApplicantName:   strings.TrimSpace(in.Name),
		ApplicantEmail:  strings.ToLower(strings.TrimSpace(in.Email)),
		ApplicantPhone:  strings.TrimSpace(in.Phone),
		UploadedFileURL: fileURL,
		Status:          StatusNew,
		SubmittedAt:     now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return Submission{}, err
	}

	if in.ApplicantID != "" && fileURL != "" && s.Resumes != nil {
		if err := s.Resumes.AddVersion(ctx, in.ApplicantID, in.FileName, fileURL, fileSize); err != nil {
			// The submission is already recorded; a missing profile version
			// is not worth failing the application over.
			telemetry.Error("apply.resume_version_failed", map[string]any{
				"user_id": in.ApplicantID,
				"job_id":  job.ID,
				"err":     err.Error(),
			})
		}
	}

	return sub, nil
}

// resolveStatusFilter maps the query-string status to an internal filter
// value. Empty or "all" means no restriction. Values outside the external
// vocabulary pass through unchanged and match nothing.
func resolveStatusFilter(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == FilterAll {
		return ""
	}
	if internal, ok := InternalStatus(raw); ok {
		return internal
	}
	return raw
}

// linkedUser resolves the applicant account when one is linked. Lookup
// failures degrade to the denormalized fields rather than failing the
// request.
func (s *Service) linkedUser(ctx context.Context, applicantID string) *users.User {
	if applicantID == "" || s.Users == nil {
		return nil
	}
	user, err := s.Users.GetByID(ctx, applicantID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			telemetry.Error("submissions.linked_user_lookup_failed", map[string]any{
				"applicant_id": applicantID,
				"err":          err.Error(),
			})
		}
		return nil
	}
	return &user
}
