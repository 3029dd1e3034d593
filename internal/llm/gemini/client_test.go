package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerlaunch-backend/internal/llm"
)

func TestConfigureAppliesRequestKnobs(t *testing.T) {
	model := &genai.GenerativeModel{}
	configure(model, llm.Request{
		System:      "advisor",
		JSON:        true,
		Temperature: llm.Temperature(0.7),
		MaxTokens:   1000,
	})

	assert.Equal(t, "application/json", model.ResponseMIMEType)
	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.7, *model.Temperature, 0.0001)
	require.NotNil(t, model.MaxOutputTokens)
	assert.Equal(t, int32(1000), *model.MaxOutputTokens)
	require.NotNil(t, model.SystemInstruction)
	assert.Equal(t, genai.Text("advisor"), model.SystemInstruction.Parts[0])
}

func TestConfigureLeavesDefaults(t *testing.T) {
	model := &genai.GenerativeModel{}
	configure(model, llm.Request{Prompt: "p"})

	assert.Empty(t, model.ResponseMIMEType)
	assert.Nil(t, model.Temperature)
	assert.Nil(t, model.SystemInstruction)
}

func TestTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	out, err := textFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)

	_, err = textFromResponse(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)

	_, err = textFromResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}})
	assert.ErrorIs(t, err, llm.ErrMalformedModelOutput)
}
