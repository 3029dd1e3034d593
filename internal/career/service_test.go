package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAdvice(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		response    string
		suggestions []string
	}{
		{
			name:        "paragraphs",
			reply:       "Focus on fundamentals.\n\n1. Learn SQL\n\n  2. Build a project  \n\n\n\n3. Network",
			response:    "Focus on fundamentals.",
			suggestions: []string{"1. Learn SQL", "2. Build a project", "3. Network"},
		},
		{
			name:        "single paragraph",
			reply:       "Just apply.",
			response:    "Just apply.",
			suggestions: []string{},
		},
		{
			name:        "empty reply",
			reply:       "",
			response:    "",
			suggestions: []string{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAdvice(tt.reply)
			assert.Equal(t, tt.response, got.Response)
			assert.Equal(t, tt.suggestions, got.Suggestions)
		})
	}
}
