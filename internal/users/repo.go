package users

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid account")

// Repo persists accounts keyed by email.
type Repo interface {
	Upsert(ctx context.Context, account Account) (Account, error)
}
