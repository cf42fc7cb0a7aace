package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_DailyRoundtrip(t *testing.T) {
	stats := Statistics{GameID: 1}
	daily := []DailyStat{
		{Date: "2024-06-16", Playtime: 30},
		{Date: "2024-06-15", Playtime: 60},
	}

	require.NoError(t, stats.SetDaily(daily))
	assert.Equal(t, daily, stats.Daily())
}

func TestStatistics_DailyTolerantDecode(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty column", ""},
		{"empty list", "[]"},
		{"corrupt json", "{not json"},
		{"wrong shape", `{"date":"2024-06-16"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Statistics{GameID: 1, DailyStats: tt.stored}
			assert.Empty(t, stats.Daily())
			assert.NotNil(t, stats.Daily())
		})
	}
}
