package resumes

import (
	"time"

	"careerlaunch-backend/internal/document"
)

// Resume is one processed upload and the structured data extracted from it.
type Resume struct {
	ID            string
	FileName      string
	FileType      string
	FileSize      int64
	StorageKey    string
	ExtractedData document.Document
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Analysis is a copy of the extracted data kept for later review.
type Analysis struct {
	ID            string
	ResumeID      string
	ExtractedData document.Document
	CreatedAt     time.Time
}

// Upload is a received resume file.
type Upload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ProcessResult is the outcome of processing an upload. ResumeID is empty when
// the extracted data could not be stored.
type ProcessResult struct {
	Data     document.Document
	ResumeID string
}
