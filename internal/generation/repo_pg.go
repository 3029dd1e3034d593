package generation

import (
	"context"
	"database/sql"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreatePortfolio inserts a portfolios row.
func (r *PGRepo) CreatePortfolio(ctx context.Context, p Portfolio) (Portfolio, error) {
	const query = `
INSERT INTO portfolios (id, template, title, subtitle, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Template, p.Title, p.Subtitle, p.Content, p.CreatedAt)
	if err != nil {
		return Portfolio{}, fmt.Errorf("%w: insert portfolio: %w", ErrPersistence, err)
	}
	return p, nil
}

// CreateATSResume inserts an ats_optimized_resumes row.
func (r *PGRepo) CreateATSResume(ctx context.Context, a ATSResume) (ATSResume, error) {
	const query = `
INSERT INTO ats_optimized_resumes (id, original_resume_id, job_description, optimized_data, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, a.ID, nullable(a.OriginalResumeID), a.JobDescription, a.OptimizedData, a.CreatedAt)
	if err != nil {
		return ATSResume{}, fmt.Errorf("%w: insert ats resume: %w", ErrPersistence, err)
	}
	return a, nil
}

// CreateCoverLetter inserts a cover_letters row.
func (r *PGRepo) CreateCoverLetter(ctx context.Context, l CoverLetter) (CoverLetter, error) {
	const query = `
INSERT INTO cover_letters (id, resume_id, job_description, cover_letter_data, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, l.ID, nullable(l.ResumeID), l.JobDescription, l.CoverLetterData, l.CreatedAt)
	if err != nil {
		return CoverLetter{}, fmt.Errorf("%w: insert cover letter: %w", ErrPersistence, err)
	}
	return l, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
