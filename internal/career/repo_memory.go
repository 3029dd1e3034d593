package career

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu           sync.RWMutex
	interactions []Interaction
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends an interaction.
func (r *MemoryRepo) Create(ctx context.Context, interaction Interaction) (Interaction, error) {
	if err := ctx.Err(); err != nil {
		return Interaction{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, interaction)
	return interaction, nil
}

// Sample returns up to limit stored interactions.
func (r *MemoryRepo) Sample(ctx context.Context, limit int) ([]Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.interactions) {
		limit = len(r.interactions)
	}
	return append([]Interaction{}, r.interactions[:limit]...), nil
}

var _ Repo = (*MemoryRepo)(nil)
