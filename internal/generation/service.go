package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/telemetry"
)

const (
	portfolioTemplate = "all"
	defaultTitle      = "Portfolio"
	defaultSubtitle   = "Professional Portfolio"
)

// Service generates documents derived from previously extracted resume data.
type Service struct {
	Repo Repo
	LLM  llm.Client

	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, client llm.Client) *Service {
	return &Service{Repo: repo, LLM: client, now: time.Now}
}

// Portfolio generates four landing page variants for resume.
func (s *Service) Portfolio(ctx context.Context, resume document.Document) (document.Document, error) {
	if err := checkResume(resume); err != nil {
		return nil, err
	}
	req, err := prompts.Portfolio(resume)
	if err != nil {
		return nil, err
	}
	content, err := llm.CompleteJSON(ctx, s.LLM, req)
	if err != nil {
		return nil, err
	}
	logShape(document.PortfolioShape, content)

	title := resume.String("personalInfo", "name")
	if title == "" {
		title = defaultTitle
	}
	subtitle := resume.String("personalInfo", "target_role")
	if subtitle == "" {
		subtitle = defaultSubtitle
	}
	s.persist(ctx, "portfolios", func(ctx context.Context) error {
		_, err := s.Repo.CreatePortfolio(ctx, Portfolio{
			ID:        uuid.NewString(),
			Template:  portfolioTemplate,
			Title:     title,
			Subtitle:  subtitle,
			Content:   content,
			CreatedAt: s.clock(),
		})
		return err
	})
	return content, nil
}

// ATS rewrites resume to match jobDescription.
func (s *Service) ATS(ctx context.Context, resume document.Document, jobDescription string) (document.Document, error) {
	if err := checkResume(resume); err != nil {
		return nil, err
	}
	req, err := prompts.ATS(resume, jobDescription)
	if err != nil {
		return nil, err
	}
	optimized, err := llm.CompleteJSON(ctx, s.LLM, req)
	if err != nil {
		return nil, err
	}
	logShape(document.ATSShape, optimized)

	s.persist(ctx, "ats_optimized_resumes", func(ctx context.Context) error {
		_, err := s.Repo.CreateATSResume(ctx, ATSResume{
			ID:               uuid.NewString(),
			OriginalResumeID: resume.String("id"),
			JobDescription:   jobDescription,
			OptimizedData:    optimized,
			CreatedAt:        s.clock(),
		})
		return err
	})
	return optimized, nil
}

// CoverLetter writes a cover letter for resume and jobDescription.
func (s *Service) CoverLetter(ctx context.Context, resume document.Document, jobDescription string) (document.Document, error) {
	if err := checkResume(resume); err != nil {
		return nil, err
	}
	req, err := prompts.CoverLetter(resume, jobDescription)
	if err != nil {
		return nil, err
	}
	letter, err := llm.CompleteJSON(ctx, s.LLM, req)
	if err != nil {
		return nil, err
	}
	logShape(document.CoverLetterShape, letter)

	s.persist(ctx, "cover_letters", func(ctx context.Context) error {
		_, err := s.Repo.CreateCoverLetter(ctx, CoverLetter{
			ID:              uuid.NewString(),
			ResumeID:        resume.String("id"),
			JobDescription:  jobDescription,
			CoverLetterData: letter,
			CreatedAt:       s.clock(),
		})
		return err
	})
	return letter, nil
}

// persist runs a best-effort write; failures are logged and counted only.
func (s *Service) persist(ctx context.Context, table string, write func(context.Context) error) {
	if s.Repo == nil {
		return
	}
	if err := write(ctx); err != nil {
		metrics.IncPersistenceFailure(table)
		telemetry.Warn("generation.store_failed", map[string]any{
			"table": table,
			"error": err.Error(),
		})
	}
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// checkResume accepts any JSON object. Key types are only logged, matching what
// extraction accepts from the model.
func checkResume(resume document.Document) error {
	if resume == nil {
		return fmt.Errorf("%w: resume data must be a JSON object", ErrInvalidInput)
	}
	logShape(document.ResumeShape, resume)
	return nil
}

func logShape(schema document.Schema, doc document.Document) {
	problems, err := schema.Check(doc)
	if err != nil || len(problems) == 0 {
		return
	}
	telemetry.Warn("generation.shape_mismatch", map[string]any{
		"schema":   schema.Name,
		"problems": problems,
	})
}
