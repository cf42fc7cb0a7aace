package stats

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yumesaka/playtrack/internal/models"
)

// Store is the persistence surface the reconciler needs. The db
// package satisfies it; tests use an in-memory fake.
type Store interface {
	ListAllSessions(gameID uint) ([]models.Session, error)
	GetStatistics(gameID uint) (*models.Statistics, error)
	PutStatistics(gameID uint, totalTime, sessionCount int, lastPlayed *int64, daily []models.DailyStat) error
}

// Reconciler recomputes a game's aggregate statistics from its
// full session history. Recomputing is idempotent: running it
// twice over the same history yields the same aggregate.
type Reconciler struct {
	store  Store
	clock  Clock
	loc    *time.Location
	logger zerolog.Logger
}

// NewReconciler creates a reconciler bucketing by the given
// location's calendar days.
func NewReconciler(store Store, clock Clock, loc *time.Location, logger zerolog.Logger) *Reconciler {
	if loc == nil {
		loc = time.Local
	}
	return &Reconciler{store: store, clock: clock, loc: loc, logger: logger}
}

// Recompute rebuilds and persists the aggregate for one game.
//
// All totals and every past date come straight from the session
// history. Only today's bucket is merged against the previously
// persisted value: a live counter may have pushed it further than
// the closed sessions account for, and a displayed counter must
// never move backwards within the day. Once the day rolls over the
// session-derived value wins, so a heartbeat overshoot expires at
// midnight rather than persisting as a floor forever.
func (r *Reconciler) Recompute(gameID uint) (*models.Statistics, error) {
	sessions, err := r.store.ListAllSessions(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for game #%d: %w", gameID, err)
	}

	prev, err := r.store.GetStatistics(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics for game #%d: %w", gameID, err)
	}

	totalTime := 0
	sessionCount := 0
	var lastPlayed *int64
	for _, s := range sessions {
		if !validSession(s) {
			r.logger.Debug().
				Uint("game_id", gameID).
				Uint("session_id", s.ID).
				Msg("skipping malformed session record")
			continue
		}
		totalTime += s.DurationMinutes
		sessionCount++
		if lastPlayed == nil || s.EndTime > *lastPlayed {
			end := s.EndTime
			lastPlayed = &end
		}
	}

	buckets := bucketSessions(sessions, r.loc)
	today := r.clock.Now().In(r.loc).Format(DateFormat)

	// Today only: keep the larger of the stored and the
	// session-derived value. Every other stored date is stale and
	// the session-derived value replaces it.
	if prev != nil {
		for _, d := range prev.Daily() {
			if d.Date == today && d.Playtime > buckets[today] {
				buckets[today] = d.Playtime
			}
		}
	}

	// "No activity today" stays representable once the game has
	// statistics at all; a game with no history and no record gets
	// an empty bucket list instead.
	if _, ok := buckets[today]; !ok && (prev != nil || len(buckets) > 0) {
		buckets[today] = 0
	}

	daily := sortedDaily(buckets)

	if err := r.store.PutStatistics(gameID, totalTime, sessionCount, lastPlayed, daily); err != nil {
		return nil, fmt.Errorf("failed to persist statistics for game #%d: %w", gameID, err)
	}

	stats := &models.Statistics{
		GameID:       gameID,
		TotalTime:    totalTime,
		SessionCount: sessionCount,
		LastPlayed:   lastPlayed,
	}
	if err := stats.SetDaily(daily); err != nil {
		return nil, err
	}

	return stats, nil
}
