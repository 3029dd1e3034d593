package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/llm/llmtest"
)

func TestCompleteJSONParsesFencedReply(t *testing.T) {
	stub := llmtest.New()
	stub.Reply("ats", "```json\n{\"ats_score\": 82}\n```")

	doc, err := llm.CompleteJSON(context.Background(), stub, llm.Request{Task: "ats", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "82", doc.String("ats_score"))

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].JSON, "json mode forced")
}

func TestCompleteJSONMalformed(t *testing.T) {
	stub := llmtest.New()
	stub.Reply("portfolio", "Sure! Here is your portfolio.")

	_, err := llm.CompleteJSON(context.Background(), stub, llm.Request{Task: "portfolio"})
	assert.ErrorIs(t, err, llm.ErrMalformedModelOutput)
}

func TestCompleteJSONRejectsArray(t *testing.T) {
	stub := llmtest.New()
	stub.Reply("extraction", `[{"name": "Jane"}]`)

	_, err := llm.CompleteJSON(context.Background(), stub, llm.Request{Task: "extraction"})
	assert.ErrorIs(t, err, llm.ErrMalformedModelOutput)
}

func TestCompletePropagatesUnavailable(t *testing.T) {
	stub := llmtest.New()
	stub.Fail(errors.New("boom"))

	_, err := llm.Complete(context.Background(), stub, llm.Request{Task: "career_advice"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteWithoutClient(t *testing.T) {
	_, err := llm.Complete(context.Background(), nil, llm.Request{})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestModelsFor(t *testing.T) {
	m := llm.Models{Standard: "big", Lite: "small"}
	assert.Equal(t, "big", m.For(llm.TierStandard))
	assert.Equal(t, "small", m.For(llm.TierLite))
	assert.Equal(t, "big", llm.Models{Standard: "big"}.For(llm.TierLite))
}

func TestPlaceholderClientFails(t *testing.T) {
	_, err := llm.Complete(context.Background(), llm.PlaceholderClient{Reason: "OPENAI_API_KEY not set"}, llm.Request{Task: "ats"})
	require.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY not set")
}
