package generation

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu           sync.RWMutex
	portfolios   []Portfolio
	atsResumes   []ATSResume
	coverLetters []CoverLetter
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) CreatePortfolio(ctx context.Context, p Portfolio) (Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return Portfolio{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.portfolios = append(r.portfolios, p)
	return p, nil
}

func (r *MemoryRepo) CreateATSResume(ctx context.Context, a ATSResume) (ATSResume, error) {
	if err := ctx.Err(); err != nil {
		return ATSResume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.atsResumes = append(r.atsResumes, a)
	return a, nil
}

func (r *MemoryRepo) CreateCoverLetter(ctx context.Context, l CoverLetter) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coverLetters = append(r.coverLetters, l)
	return l, nil
}

// Portfolios returns a copy of the stored portfolios.
func (r *MemoryRepo) Portfolios() []Portfolio {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Portfolio(nil), r.portfolios...)
}

// ATSResumes returns a copy of the stored ATS resumes.
func (r *MemoryRepo) ATSResumes() []ATSResume {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ATSResume(nil), r.atsResumes...)
}

// CoverLetters returns a copy of the stored cover letters.
func (r *MemoryRepo) CoverLetters() []CoverLetter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]CoverLetter(nil), r.coverLetters...)
}

var _ Repo = (*MemoryRepo)(nil)
