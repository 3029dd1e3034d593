package resumes

import "context"

// Repo persists resumes and their analysis rows.
type Repo interface {
	Create(ctx context.Context, resume Resume) (Resume, error)
	Latest(ctx context.Context) (Resume, error)
	CreateAnalysis(ctx context.Context, analysis Analysis) (Analysis, error)
}
