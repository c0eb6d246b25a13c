package resumes

import "time"

// Resume is a per-user resume profile. Versions is empty until the user
// uploads a file; parsing and scoring of versions happen elsewhere.
type Resume struct {
	ID          string
	UserID      string
	IsAnonymous bool
	Versions    []Version
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Version is one uploaded resume file.
type Version struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}
