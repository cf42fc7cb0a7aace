package stats

import (
	"fmt"

	"github.com/yumesaka/playtrack/internal/models"
)

// FormattedStats is a read-only display snapshot of one game's
// aggregate. Daily always contains an entry for today, even when
// storage has none.
type FormattedStats struct {
	GameID       uint
	TotalMinutes int
	TodayMinutes int
	SessionCount int
	LastPlayed   *int64
	Daily        []models.DailyStat
}

// Formatted builds the display snapshot for a game.
func (r *Reconciler) Formatted(gameID uint) (*FormattedStats, error) {
	stored, err := r.store.GetStatistics(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics for game #%d: %w", gameID, err)
	}

	today := r.clock.Now().In(r.loc).Format(DateFormat)

	out := &FormattedStats{GameID: gameID, Daily: []models.DailyStat{}}
	if stored != nil {
		out.TotalMinutes = stored.TotalTime
		out.SessionCount = stored.SessionCount
		out.LastPlayed = stored.LastPlayed
		out.Daily = stored.Daily()
	}

	hasToday := false
	for _, d := range out.Daily {
		if d.Date == today {
			out.TodayMinutes = d.Playtime
			hasToday = true
			break
		}
	}
	if !hasToday {
		// Daily is sorted descending and today sorts first.
		out.Daily = append([]models.DailyStat{{Date: today, Playtime: 0}}, out.Daily...)
	}

	return out, nil
}
