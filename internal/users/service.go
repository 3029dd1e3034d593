package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	Repo       Repo
	BcryptCost int
}

func NewService(repo Repo, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{Repo: repo, BcryptCost: bcryptCost}
}

// Register creates or refreshes the account for account.Email and stores a
// bcrypt hash of password. The plaintext is never persisted.
func (s *Service) Register(ctx context.Context, account Account, password string) (Account, error) {
	if s == nil || s.Repo == nil {
		return Account{}, errors.New("users service not configured")
	}
	account.Email = strings.TrimSpace(account.Email)
	if account.Email == "" {
		return Account{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return Account{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	return s.Repo.Upsert(ctx, account)
}
