package submissions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO submissions (
	id, job_id, applicant_id, applicant_name, applicant_email, applicant_phone,
	uploaded_file_url, parsed_resume_data, analysis, ats_score, status, submitted_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.JobID,
		nullableString(sub.ApplicantID),
		nullableString(sub.ApplicantName),
		nullableString(sub.ApplicantEmail),
		nullableString(sub.ApplicantPhone),
		nullableString(sub.UploadedFileURL),
		nullableJSON(sub.ParsedResume),
		nullableJSON(sub.Analysis),
		sub.ATSScore,
		sub.Status,
		sub.SubmittedAt,
		sub.UpdatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Submission, error) {
	const base = `
SELECT id, job_id, applicant_id, applicant_name, applicant_email, applicant_phone,
       uploaded_file_url, parsed_resume_data, analysis, ats_score, status, submitted_at, updated_at
FROM submissions
WHERE job_id = $1`
	const tail = `
ORDER BY ats_score DESC, submitted_at DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if filter.Status != "" {
		rows, err = r.DB.QueryContext(ctx, base+` AND status = $2`+tail+` LIMIT $3 OFFSET $4`,
			filter.JobID, filter.Status, filter.Limit, filter.Offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, base+tail+` LIMIT $2 OFFSET $3`,
			filter.JobID, filter.Limit, filter.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, jobID, status string) (int, error) {
	var total int
	var err error
	if status != "" {
		err = r.DB.QueryRowContext(ctx,
			`SELECT count(*) FROM submissions WHERE job_id = $1 AND status = $2`,
			jobID, status).Scan(&total)
	} else {
		err = r.DB.QueryRowContext(ctx,
			`SELECT count(*) FROM submissions WHERE job_id = $1`,
			jobID).Scan(&total)
	}
	return total, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, submissionID, jobID, status string, updatedAt time.Time) (Submission, error) {
	const query = `
UPDATE submissions
SET status = $3, updated_at = $4
WHERE id = $1 AND job_id = $2
RETURNING id, job_id, applicant_id, applicant_name, applicant_email, applicant_phone,
          uploaded_file_url, parsed_resume_data, analysis, ats_score, status, submitted_at, updated_at`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, submissionID, jobID, status, updatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrApplicationNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var applicantID sql.NullString
	var applicantName sql.NullString
	var applicantEmail sql.NullString
	var applicantPhone sql.NullString
	var fileURL sql.NullString
	var parsed []byte
	var analysis []byte
	var updatedAt sql.NullTime
	err := row.Scan(
		&sub.ID,
		&sub.JobID,
		&applicantID,
		&applicantName,
		&applicantEmail,
		&applicantPhone,
		&fileURL,
		&parsed,
		&analysis,
		&sub.ATSScore,
		&sub.Status,
		&sub.SubmittedAt,
		&updatedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	if applicantID.Valid {
		sub.ApplicantID = applicantID.String
	}
	if applicantName.Valid {
		sub.ApplicantName = applicantName.String
	}
	if applicantEmail.Valid {
		sub.ApplicantEmail = applicantEmail.String
	}
	if applicantPhone.Valid {
		sub.ApplicantPhone = applicantPhone.String
	}
	if fileURL.Valid {
		sub.UploadedFileURL = fileURL.String
	}
	if len(parsed) > 0 {
		sub.ParsedResume = parsed
	}
	if len(analysis) > 0 {
		sub.Analysis = analysis
	}
	if updatedAt.Valid {
		sub.UpdatedAt = updatedAt.Time
	} else {
		sub.UpdatedAt = time.Now().UTC()
	}
	return sub, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return []byte(value)
}
