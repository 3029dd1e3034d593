package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobDescriptionUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want JobDescription
	}{
		{name: "string", raw: `" Backend engineer "`, want: "Backend engineer"},
		{name: "object", raw: `{"description":"Data analyst"}`, want: "Data analyst"},
		{name: "object without description", raw: `{"title":"x"}`, want: ""},
		{name: "null", raw: `null`, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got JobDescription
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad JobDescription
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}
