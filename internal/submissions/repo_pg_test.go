package submissions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var submissionColumns = []string{
	"id", "job_id", "applicant_id", "applicant_name", "applicant_email", "applicant_phone",
	"uploaded_file_url", "parsed_resume_data", "analysis", "ats_score", "status", "submitted_at", "updated_at",
}

func TestPGRepoUpdateStatusMatchesCompoundKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows(submissionColumns).
		AddRow("app-1", "job-1", nil, "Form Name", nil, nil, nil, nil, nil, 42, StatusShortlisted, now, now)

	mock.ExpectQuery("UPDATE submissions").
		WithArgs("app-1", "job-1", StatusShortlisted, sqlmock.AnyArg()).
		WillReturnRows(rows)

	sub, err := repo.UpdateStatus(context.Background(), "app-1", "job-1", StatusShortlisted, now)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if sub.Status != StatusShortlisted {
		t.Fatalf("expected status %q, got %q", StatusShortlisted, sub.Status)
	}
	if sub.ApplicantName != "Form Name" {
		t.Fatalf("expected applicant name to scan, got %q", sub.ApplicantName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("UPDATE submissions").
		WithArgs("app-404", "job-1", StatusReviewed, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(submissionColumns))

	if _, err := repo.UpdateStatus(context.Background(), "app-404", "job-1", StatusReviewed, time.Now().UTC()); err != ErrApplicationNotFound {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAppliesStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows(submissionColumns).
		AddRow("app-1", "job-1", nil, nil, nil, nil, nil, nil, []byte(`{"skillsMatched":["go"]}`), 90, StatusNew, now, now)

	mock.ExpectQuery("SELECT (.+) FROM submissions").
		WithArgs("job-1", StatusNew, 10, 0).
		WillReturnRows(rows)

	subs, err := repo.List(context.Background(), ListFilter{JobID: "job-1", Status: StatusNew, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(subs))
	}
	if skills := subs[0].SkillsMatched(); len(skills) != 1 || skills[0] != "go" {
		t.Fatalf("expected analysis to scan, got %+v", skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCountWithoutFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT count").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	total, err := repo.Count(context.Background(), "job-1", "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
