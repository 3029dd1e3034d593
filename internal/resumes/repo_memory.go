package resumes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	resumes  []Resume
	analyses []Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes = append(r.resumes, resume)
	return resume, nil
}

// Latest returns the resume with the newest CreatedAt; ties go to the later insert.
func (r *MemoryRepo) Latest(ctx context.Context) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.resumes) == 0 {
		return Resume{}, ErrNotFound
	}
	latest := r.resumes[0]
	for _, resume := range r.resumes[1:] {
		if !resume.CreatedAt.Before(latest.CreatedAt) {
			latest = resume
		}
	}
	return latest, nil
}

// CreateAnalysis appends an analysis row.
func (r *MemoryRepo) CreateAnalysis(ctx context.Context, analysis Analysis) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, analysis)
	return analysis, nil
}

// Analyses returns a copy of the stored analysis rows.
func (r *MemoryRepo) Analyses() []Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Analysis(nil), r.analyses...)
}

var _ Repo = (*MemoryRepo)(nil)
