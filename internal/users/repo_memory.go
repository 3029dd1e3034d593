package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account // lower-cased email -> account
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{accounts: make(map[string]Account)}
}

// Upsert inserts account or replaces the mutable fields of the account with the same email.
func (r *MemoryRepo) Upsert(ctx context.Context, account Account) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(account.Email)
	now := time.Now().UTC()
	if existing, ok := r.accounts[key]; ok {
		account.ID = existing.ID
		account.CreatedAt = existing.CreatedAt
	} else {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	r.accounts[key] = account
	return account, nil
}

// Lookup returns the account registered under email.
func (r *MemoryRepo) Lookup(email string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[strings.ToLower(email)]
	return account, ok
}

var _ Repo = (*MemoryRepo)(nil)
