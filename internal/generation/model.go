package generation

import (
	"time"

	"careerlaunch-backend/internal/document"
)

// Portfolio is a stored set of generated landing pages.
type Portfolio struct {
	ID        string
	Template  string
	Title     string
	Subtitle  string
	Content   document.Document
	CreatedAt time.Time
}

// ATSResume is a stored resume rewrite tailored to a job description.
type ATSResume struct {
	ID               string
	OriginalResumeID string
	JobDescription   string
	OptimizedData    document.Document
	CreatedAt        time.Time
}

// CoverLetter is a stored generated cover letter.
type CoverLetter struct {
	ID              string
	ResumeID        string
	JobDescription  string
	CoverLetterData document.Document
	CreatedAt       time.Time
}
