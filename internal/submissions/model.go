package submissions

import (
	"encoding/json"
	"time"
)

// Submission is one applicant's application to one job. ApplicantID is empty
// for anonymous applications; the denormalized applicant fields then carry
// whatever contact details were supplied with the form.
//
// ParsedResumeData, Analysis, and ATSScore are populated by out-of-scope
// parsing and scoring flows; this service only reads them.
type Submission struct {
	ID              string
	JobID           string
	ApplicantID     string
	ApplicantName   string
	ApplicantEmail  string
	ApplicantPhone  string
	UploadedFileURL string
	ParsedResume    json.RawMessage
	Analysis        json.RawMessage
	ATSScore        int
	Status          string
	SubmittedAt     time.Time
	UpdatedAt       time.Time
}

// analysisFields is the subset of the stored analysis document this service
// projects into listings.
type analysisFields struct {
	SkillsMatched []string `json:"skillsMatched"`
}

// SkillsMatched extracts the matched skills from the analysis document,
// defaulting to an empty slice when the document is absent or malformed.
func (s Submission) SkillsMatched() []string {
	if len(s.Analysis) == 0 {
		return []string{}
	}
	var fields analysisFields
	if err := json.Unmarshal(s.Analysis, &fields); err != nil || fields.SkillsMatched == nil {
		return []string{}
	}
	return fields.SkillsMatched
}
