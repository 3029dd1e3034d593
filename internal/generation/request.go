package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"careerlaunch-backend/internal/document"
)

// JobDescription accepts either a bare string or {"description": "..."}.
type JobDescription string

// UnmarshalJSON implements json.Unmarshaler.
func (j *JobDescription) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*j = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*j = JobDescription(strings.TrimSpace(s))
		return nil
	}
	var wrapped struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return fmt.Errorf("job_description must be a string or an object with a description: %w", err)
	}
	*j = JobDescription(strings.TrimSpace(wrapped.Description))
	return nil
}

type tailorRequest struct {
	ResumeData     document.Document `json:"resume_data" binding:"required"`
	JobDescription JobDescription    `json:"job_description" binding:"required"`
}
