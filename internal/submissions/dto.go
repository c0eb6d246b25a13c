package submissions

import (
	"time"

	"jobtrack-backend/internal/users"
)

// ApplicationResponse is the outward-facing projection of a submission.
// Status uses the external vocabulary.
type ApplicationResponse struct {
	ID              string    `json:"id"`
	ApplicantName   string    `json:"applicantName"`
	ApplicantEmail  string    `json:"applicantEmail"`
	ApplicantPhone  string    `json:"applicantPhone"`
	UploadedFileURL string    `json:"uploadedFileUrl,omitempty"`
	ATSScore        int       `json:"atsScore"`
	SkillsMatched   []string  `json:"skillsMatched"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// toResponse projects a submission, falling back through linked-account
// fields, denormalized submission fields, then anonymous placeholders.
func toResponse(sub Submission, linked *users.User) ApplicationResponse {
	name := ""
	email := ""
	phone := ""
	if linked != nil {
		name = linked.Name
		email = linked.Email
		phone = linked.Phone
	}
	if name == "" {
		name = sub.ApplicantName
	}
	if email == "" {
		email = sub.ApplicantEmail
	}
	if phone == "" {
		phone = sub.ApplicantPhone
	}
	if name == "" {
		name = "Anonymous"
	}

	return ApplicationResponse{
		ID:              sub.ID,
		ApplicantName:   name,
		ApplicantEmail:  email,
		ApplicantPhone:  phone,
		UploadedFileURL: sub.UploadedFileURL,
		ATSScore:        sub.ATSScore,
		SkillsMatched:   sub.SkillsMatched(),
		Status:          ExternalStatus(sub.Status),
		SubmittedAt:     sub.SubmittedAt,
	}
}
