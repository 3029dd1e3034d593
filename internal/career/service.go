package career

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/telemetry"
)

// Service answers career questions and records them per user.
type Service struct {
	Repo Repo
	LLM  llm.Client

	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, client llm.Client) *Service {
	return &Service{Repo: repo, LLM: client, now: time.Now}
}

// Advise asks the model about query. When userID is set the full reply is
// stored; a storage failure does not fail the call.
func (s *Service) Advise(ctx context.Context, query, userID string) (Advice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Advice{}, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	reply, err := llm.Complete(ctx, s.LLM, prompts.CareerAdvice(query))
	if err != nil {
		return Advice{}, err
	}
	advice := SplitAdvice(reply)

	if userID = strings.TrimSpace(userID); userID != "" && s.Repo != nil {
		interaction := Interaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Query:       query,
			Response:    reply,
			Suggestions: advice.Suggestions,
			CreatedAt:   s.clock(),
		}
		if _, err := s.Repo.Create(ctx, interaction); err != nil {
			metrics.IncPersistenceFailure("career_interactions")
			telemetry.Warn("career.store_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return advice, nil
}

// Sample returns up to limit stored interactions.
func (s *Service) Sample(ctx context.Context, limit int) ([]Interaction, error) {
	return s.Repo.Sample(ctx, limit)
}

// SplitAdvice takes the first paragraph as the response and every later
// non-blank paragraph, trimmed, as a suggestion.
func SplitAdvice(reply string) Advice {
	parts := strings.Split(reply, "\n\n")
	advice := Advice{Response: parts[0], Suggestions: []string{}}
	for _, part := range parts[1:] {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			advice.Suggestions = append(advice.Suggestions, trimmed)
		}
	}
	return advice
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}
