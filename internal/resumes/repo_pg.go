package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a resume row.
func (r *PGRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
    id,
    file_name,
    file_type,
    file_size,
    storage_key,
    extracted_data,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var storageKey sql.NullString
	if resume.StorageKey != "" {
		storageKey = sql.NullString{String: resume.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.FileName,
		resume.FileType,
		resume.FileSize,
		storageKey,
		resume.ExtractedData,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: insert resume: %w", ErrPersistence, err)
	}
	return resume, nil
}

// Latest returns the most recently created resume.
func (r *PGRepo) Latest(ctx context.Context) (Resume, error) {
	const query = `
SELECT id, file_name, file_type, file_size, storage_key, extracted_data, created_at, updated_at
FROM resumes
ORDER BY created_at DESC
LIMIT 1`

	var resume Resume
	var storageKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&resume.ID,
		&resume.FileName,
		&resume.FileType,
		&resume.FileSize,
		&storageKey,
		&resume.ExtractedData,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("%w: select latest resume: %w", ErrPersistence, err)
	}
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}
	return resume, nil
}

// CreateAnalysis inserts a resume_analysis row. ResumeID may be empty.
func (r *PGRepo) CreateAnalysis(ctx context.Context, analysis Analysis) (Analysis, error) {
	const query = `
INSERT INTO resume_analysis (id, resume_id, extracted_data, created_at)
VALUES ($1, $2, $3, $4)`

	var resumeID sql.NullString
	if analysis.ResumeID != "" {
		resumeID = sql.NullString{String: analysis.ResumeID, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, analysis.ID, resumeID, analysis.ExtractedData, analysis.CreatedAt)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: insert resume analysis: %w", ErrPersistence, err)
	}
	return analysis, nil
}

var _ Repo = (*PGRepo)(nil)
