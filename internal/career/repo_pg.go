package career

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a career_interactions row.
func (r *PGRepo) Create(ctx context.Context, interaction Interaction) (Interaction, error) {
	const query = `
INSERT INTO career_interactions (id, user_id, query, response, suggestions, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	suggestions := interaction.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	encoded, err := json.Marshal(suggestions)
	if err != nil {
		return Interaction{}, fmt.Errorf("encode suggestions: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		interaction.ID,
		interaction.UserID,
		interaction.Query,
		interaction.Response,
		encoded,
		interaction.CreatedAt,
	)
	if err != nil {
		return Interaction{}, fmt.Errorf("%w: insert career interaction: %w", ErrPersistence, err)
	}
	return interaction, nil
}

// Sample returns up to limit rows in no particular order.
func (r *PGRepo) Sample(ctx context.Context, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 1
	}
	const query = `
SELECT id, user_id, query, response, suggestions, created_at
FROM career_interactions
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: select career interactions: %w", ErrPersistence, err)
	}
	defer rows.Close()

	out := []Interaction{}
	for rows.Next() {
		var item Interaction
		var suggestions []byte
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Query,
			&item.Response,
			&suggestions,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan career interaction: %w", ErrPersistence, err)
		}
		if len(suggestions) > 0 {
			if err := json.Unmarshal(suggestions, &item.Suggestions); err != nil {
				return nil, fmt.Errorf("decode suggestions: %w", err)
			}
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
