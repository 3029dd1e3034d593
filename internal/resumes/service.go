package resumes

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/extract"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/storage/object"
	"careerlaunch-backend/internal/shared/telemetry"
)

const archiveNamespace = "resumes"

// Service extracts resumes and records the results.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	LLM   llm.Client

	now func() time.Time
}

// NewService constructs a Service. store may be nil, in which case raw files
// are not archived.
func NewService(repo Repo, store object.ObjectStore, client llm.Client) *Service {
	return &Service{Repo: repo, Store: store, LLM: client, now: time.Now}
}

// Process extracts text from the upload, asks the model to structure it, and
// stores the result. Storage failures do not fail the call; they leave
// ProcessResult.ResumeID empty.
func (s *Service) Process(ctx context.Context, upload Upload) (ProcessResult, error) {
	text, err := extract.ExtractText(upload.Content, upload.FileName)
	if err != nil {
		return ProcessResult{}, err
	}

	data, err := llm.CompleteJSON(ctx, s.LLM, prompts.Extraction(text))
	if err != nil {
		return ProcessResult{}, err
	}
	logShape(data, upload.FileName)

	result := ProcessResult{Data: data}
	resume, err := s.store(ctx, upload, data)
	if err != nil {
		telemetry.Warn("resume.store_failed", map[string]any{
			"file_name": upload.FileName,
			"error":     err.Error(),
		})
		return result, nil
	}
	result.ResumeID = resume.ID

	analysis := Analysis{
		ID:            uuid.NewString(),
		ResumeID:      resume.ID,
		ExtractedData: data,
		CreatedAt:     resume.CreatedAt,
	}
	if _, err := s.Repo.CreateAnalysis(ctx, analysis); err != nil {
		metrics.IncPersistenceFailure("resume_analysis")
		telemetry.Warn("resume.analysis_store_failed", map[string]any{
			"resume_id": resume.ID,
			"error":     err.Error(),
		})
	}
	return result, nil
}

// Latest returns the most recently stored resume.
func (s *Service) Latest(ctx context.Context) (Resume, error) {
	return s.Repo.Latest(ctx)
}

func (s *Service) store(ctx context.Context, upload Upload, data document.Document) (Resume, error) {
	if s.Repo == nil {
		return Resume{}, fmt.Errorf("%w: no repository configured", ErrPersistence)
	}

	now := s.clock().UTC()
	resume := Resume{
		ID:            uuid.NewString(),
		FileName:      upload.FileName,
		FileType:      upload.ContentType,
		FileSize:      int64(len(upload.Content)),
		ExtractedData: data,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.Store != nil {
		key, _, mimeType, err := s.Store.Save(ctx, archiveNamespace, upload.FileName, bytes.NewReader(upload.Content))
		if err != nil {
			metrics.IncPersistenceFailure("archive")
			return Resume{}, fmt.Errorf("%w: archive upload: %w", ErrPersistence, err)
		}
		resume.StorageKey = key
		if resume.FileType == "" {
			resume.FileType = mimeType
		}
	}
	if resume.FileType == "" {
		resume.FileType = "application/octet-stream"
	}

	stored, err := s.Repo.Create(ctx, resume)
	if err != nil {
		metrics.IncPersistenceFailure("resumes")
		return Resume{}, err
	}
	return stored, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func logShape(data document.Document, fileName string) {
	problems, err := document.ResumeShape.Check(data)
	if err != nil || len(problems) == 0 {
		return
	}
	telemetry.Warn("resume.shape_mismatch", map[string]any{
		"file_name": fileName,
		"problems":  problems,
	})
}
