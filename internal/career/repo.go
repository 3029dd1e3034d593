package career

import "context"

// Repo persists career interactions.
type Repo interface {
	Create(ctx context.Context, interaction Interaction) (Interaction, error)
	Sample(ctx context.Context, limit int) ([]Interaction, error)
}
