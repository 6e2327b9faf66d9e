package quality

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark_JSON(t *testing.T) {
	tests := []struct {
		mark Mark
		wire string
	}{
		{Unrated, "null"},
		{Passed, "true"},
		{Failed, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.mark.String(), func(t *testing.T) {
			data, err := json.Marshal(tt.mark)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(data))

			var back Mark
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.mark, back)
		})
	}

	var m Mark
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &m))
}

func TestMarkOf(t *testing.T) {
	assert.Equal(t, Passed, MarkOf(true))
	assert.Equal(t, Failed, MarkOf(false))
	assert.Equal(t, Unrated, Mark(0))
}
