package users

import (
	"context"
	"database/sql"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, account Account) (Account, error) {
	const query = `
INSERT INTO accounts (id, email, full_name, linkedin_id, linkedin_url, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (email) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  linkedin_id = EXCLUDED.linkedin_id,
  linkedin_url = EXCLUDED.linkedin_url,
  password_hash = EXCLUDED.password_hash,
  updated_at = now()
RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		account.ID,
		account.Email,
		nullableString(account.FullName),
		nullableString(account.LinkedInID),
		nullableString(account.LinkedInURL),
		account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return Account{}, fmt.Errorf("upsert account: %w", err)
	}
	return account, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
