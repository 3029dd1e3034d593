package generation

import "context"

// Repo persists generated artifacts.
type Repo interface {
	CreatePortfolio(ctx context.Context, p Portfolio) (Portfolio, error)
	CreateATSResume(ctx context.Context, r ATSResume) (ATSResume, error)
	CreateCoverLetter(ctx context.Context, l CoverLetter) (CoverLetter, error)
}
