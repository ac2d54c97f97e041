package handlers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateBoardDTO(t *testing.T) {
	dto, err := ParseCreateBoardDTO(map[string][]string{
		"size": {"16"}, "mines": {"64"}, "hint_duration": {"1500"},
	})
	require.NoError(t, err)
	assert.Equal(t, 16, dto.Size)
	assert.Equal(t, 64, dto.Mines)
	require.NotNil(t, dto.Hint())
	assert.Equal(t, 1500*time.Millisecond, *dto.Hint())

	dto, err = ParseCreateBoardDTO(map[string][]string{"size": {"8"}, "mines": {"12"}})
	require.NoError(t, err)
	assert.Nil(t, dto.Hint())
}

func TestParseCreateBoardDTOHintLimit(t *testing.T) {
	tests := []struct {
		ms    int64
		valid bool
	}{
		{maxHintMillis, true},
		{maxHintMillis + 1, false},
		{9_300_000_000_000_000, false},
	}
	for _, test := range tests {
		dto, err := ParseCreateBoardDTO(map[string][]string{
			"size": {"8"}, "mines": {"12"},
			"hint_duration": {strconv.FormatInt(test.ms, 10)},
		})
		if !test.valid {
			assert.ErrorContains(t, err, "hint_duration", test.ms)
			continue
		}
		require.NoError(t, err)
		assert.Positive(t, *dto.Hint())
	}
}
