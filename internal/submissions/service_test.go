package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/users"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo, *jobs.MemoryRepo, *users.MemoryRepo) {
	t.Helper()
	subRepo := NewMemoryRepo()
	jobRepo := jobs.NewMemoryRepo()
	userRepo := users.NewMemoryRepo()
	svc := &Service{Repo: subRepo, Jobs: jobRepo, Users: userRepo}
	return svc, subRepo, jobRepo, userRepo
}

func seedJob(t *testing.T, repo *jobs.MemoryRepo, slug, owner string) jobs.Job {
	t.Helper()
	job := jobs.Job{
		ID:        "job-" + slug,
		Slug:      slug,
		CreatedBy: owner,
		Title:     "Backend Engineer",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func seedSubmission(t *testing.T, repo *MemoryRepo, sub Submission) Submission {
	t.Helper()
	if sub.Status == "" {
		sub.Status = StatusNew
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	return sub
}

func TestUpdateStatusRoundTrip(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")
	seedSubmission(t, subRepo, Submission{ID: "app-1", JobID: job.ID})

	for _, external := range []string{"pending", "reviewed", "shortlisted", "rejected"} {
		app, err := svc.UpdateStatus(context.Background(), "recruiter-1", "backend-1", "app-1", external)
		if err != nil {
			t.Fatalf("UpdateStatus(%q): %v", external, err)
		}
		if app.Status != external {
			t.Fatalf("expected status %q after update, got %q", external, app.Status)
		}

		listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(listed) != 1 || listed[0].Status != external {
			t.Fatalf("expected listing to report %q, got %+v", external, listed)
		}
	}
}

func TestUpdateStatusRejectsUnknownStatusWithoutMutation(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")
	seedSubmission(t, subRepo, Submission{ID: "app-1", JobID: job.ID})

	_, err := svc.UpdateStatus(context.Background(), "recruiter-1", "backend-1", "app-1", "archived")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if listed[0].Status != "pending" {
		t.Fatalf("expected status to remain pending, got %q", listed[0].Status)
	}
}

func TestOwnershipFailuresAreIndistinguishable(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")
	seedSubmission(t, subRepo, Submission{ID: "app-1", JobID: job.ID})

	_, missingErr := svc.UpdateStatus(context.Background(), "recruiter-1", "no-such-job", "app-1", "reviewed")
	_, foreignErr := svc.UpdateStatus(context.Background(), "recruiter-2", "backend-1", "app-1", "reviewed")

	if !errors.Is(missingErr, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound for missing job, got %v", missingErr)
	}
	if !errors.Is(foreignErr, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound for foreign job, got %v", foreignErr)
	}
	if missingErr.Error() != foreignErr.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", missingErr, foreignErr)
	}
}

func TestUpdateStatusUnknownApplication(t *testing.T) {
	svc, _, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "backend-1", "recruiter-1")

	_, err := svc.UpdateStatus(context.Background(), "recruiter-1", "backend-1", "app-404", "reviewed")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestListOrderingByScoreThenRecency(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")

	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)
	seedSubmission(t, subRepo, Submission{ID: "a", JobID: job.ID, ATSScore: 90, SubmittedAt: t1})
	seedSubmission(t, subRepo, Submission{ID: "b", JobID: job.ID, ATSScore: 70, SubmittedAt: t2})
	seedSubmission(t, subRepo, Submission{ID: "c", JobID: job.ID, ATSScore: 90, SubmittedAt: t3})

	listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{listed[0].ID, listed[1].ID, listed[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestListStatusFilter(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")
	seedSubmission(t, subRepo, Submission{ID: "a", JobID: job.ID, Status: StatusNew})
	seedSubmission(t, subRepo, Submission{ID: "b", JobID: job.ID, Status: StatusShortlisted})
	seedSubmission(t, subRepo, Submission{ID: "c", JobID: job.ID, Status: StatusShortlisted})

	all, pagination, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Status: "all"})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 || pagination.Total != 3 {
		t.Fatalf("expected all 3 submissions, got %d (total %d)", len(all), pagination.Total)
	}

	shortlisted, pagination, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Status: "shortlisted"})
	if err != nil {
		t.Fatalf("List shortlisted: %v", err)
	}
	if len(shortlisted) != 2 || pagination.Total != 2 {
		t.Fatalf("expected 2 shortlisted, got %d (total %d)", len(shortlisted), pagination.Total)
	}

	pending, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Status: "pending"})
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "a" {
		t.Fatalf("expected the pending filter to match the new submission, got %+v", pending)
	}

	unknown, pagination, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Status: "archived"})
	if err != nil {
		t.Fatalf("List unknown: %v", err)
	}
	if len(unknown) != 0 || pagination.Total != 0 {
		t.Fatalf("expected unknown status to match nothing, got %d (total %d)", len(unknown), pagination.Total)
	}
}

func TestListPagination(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedSubmission(t, subRepo, Submission{
			ID:          string(rune('a' + i)),
			JobID:       job.ID,
			ATSScore:    100 - i,
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	page2, pagination, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if pagination.Total != 7 || pagination.Pages != 3 || pagination.Page != 2 || pagination.Limit != 3 {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
	if len(page2) != 3 {
		t.Fatalf("expected 3 rows on page 2, got %d", len(page2))
	}

	beyond, pagination, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{Page: 9, Limit: 3})
	if err != nil {
		t.Fatalf("List beyond range: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("expected empty page beyond range, got %d rows", len(beyond))
	}
	if pagination.Total != 7 || pagination.Pages != 3 {
		t.Fatalf("totals must not depend on page: %+v", pagination)
	}
}

func TestProjectionIdentityFallback(t *testing.T) {
	svc, subRepo, jobRepo, userRepo := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")

	if err := userRepo.Create(context.Background(), users.User{
		ID:    "user-1",
		Name:  "Linked Name",
		Email: "linked@example.com",
		Phone: "555-0100",
		Role:  users.RoleApplicant,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	seedSubmission(t, subRepo, Submission{
		ID: "linked", JobID: job.ID, ApplicantID: "user-1",
		ApplicantName: "Form Name", ApplicantEmail: "form@example.com",
		ATSScore: 30,
	})
	seedSubmission(t, subRepo, Submission{
		ID: "denormalized", JobID: job.ID,
		ApplicantName: "Form Only", ApplicantEmail: "form-only@example.com", ApplicantPhone: "555-0101",
		ATSScore: 20,
	})
	seedSubmission(t, subRepo, Submission{ID: "anonymous", JobID: job.ID, ATSScore: 10})

	listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	byID := map[string]ApplicationResponse{}
	for _, app := range listed {
		byID[app.ID] = app
	}

	if got := byID["linked"]; got.ApplicantName != "Linked Name" || got.ApplicantEmail != "linked@example.com" || got.ApplicantPhone != "555-0100" {
		t.Fatalf("linked projection wrong: %+v", got)
	}
	if got := byID["denormalized"]; got.ApplicantName != "Form Only" || got.ApplicantEmail != "form-only@example.com" || got.ApplicantPhone != "555-0101" {
		t.Fatalf("denormalized projection wrong: %+v", got)
	}
	if got := byID["anonymous"]; got.ApplicantName != "Anonymous" || got.ApplicantEmail != "" {
		t.Fatalf("anonymous projection wrong: %+v", got)
	}
}

func TestProjectionSkillsMatched(t *testing.T) {
	svc, subRepo, jobRepo, _ := newTestService(t)
	job := seedJob(t, jobRepo, "backend-1", "recruiter-1")

	seedSubmission(t, subRepo, Submission{
		ID: "scored", JobID: job.ID, ATSScore: 80,
		Analysis: json.RawMessage(`{"skillsMatched":["go","sql"],"summary":"solid"}`),
	})
	seedSubmission(t, subRepo, Submission{ID: "unscored", JobID: job.ID, ATSScore: 10})

	listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(listed[0].SkillsMatched) != 2 || listed[0].SkillsMatched[0] != "go" {
		t.Fatalf("expected skills from analysis, got %+v", listed[0].SkillsMatched)
	}
	if listed[1].SkillsMatched == nil || len(listed[1].SkillsMatched) != 0 {
		t.Fatalf("expected empty skills slice when analysis absent, got %+v", listed[1].SkillsMatched)
	}
}

func TestApplyCreatesPendingSubmission(t *testing.T) {
	svc, _, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "backend-1", "recruiter-1")

	sub, err := svc.Apply(context.Background(), ApplyInput{
		Slug:  "backend-1",
		Name:  "Applicant",
		Email: "Applicant@Example.com",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sub.Status != StatusNew {
		t.Fatalf("expected new submission status %q, got %q", StatusNew, sub.Status)
	}
	if sub.ApplicantEmail != "applicant@example.com" {
		t.Fatalf("expected normalized email, got %q", sub.ApplicantEmail)
	}

	listed, _, err := svc.List(context.Background(), "recruiter-1", "backend-1", ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != "pending" {
		t.Fatalf("expected one pending application, got %+v", listed)
	}
}

func TestApplyUnknownJob(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), ApplyInput{Slug: "nope", Name: "A", Email: "a@b.c"})
	if !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}
