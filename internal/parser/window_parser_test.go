package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input string
		days  int
	}{
		{"14", 14},
		{"1 day", 1},
		{"30 days", 30},
		{"2 weeks", 14},
		{" 1 Week ", 7},
		{"3 months", 90},
		{"2weeks", 14},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			days, err := ParseWindow(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestParseWindow_Invalid(t *testing.T) {
	for _, input := range []string{"", "0", "-3", "soon", "2 fortnights", "days"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseWindow(input)
			assert.Error(t, err)
		})
	}
}
