package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumesaka/playtrack/internal/models"
)

// fixedClock pins "today" for deterministic reconciliation.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	sessions []models.Session
	stats    map[uint]*models.Statistics

	listErr error
	getErr  error
	putErr  error
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{stats: make(map[uint]*models.Statistics)}
}

func (f *fakeStore) ListAllSessions(gameID uint) ([]models.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Session
	for _, s := range f.sessions {
		if s.GameID == gameID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStatistics(gameID uint) (*models.Statistics, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stats[gameID], nil
}

func (f *fakeStore) PutStatistics(gameID uint, totalTime, sessionCount int, lastPlayed *int64, daily []models.DailyStat) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	stats := &models.Statistics{
		GameID:       gameID,
		TotalTime:    totalTime,
		SessionCount: sessionCount,
		LastPlayed:   lastPlayed,
	}
	if err := stats.SetDaily(daily); err != nil {
		return err
	}
	f.stats[gameID] = stats
	return nil
}

func newTestReconciler(store Store, now time.Time) *Reconciler {
	return NewReconciler(store, fixedClock{now: now}, time.UTC, zerolog.Nop())
}

func session(gameID uint, start, end int64) models.Session {
	return models.Session{
		GameID:          gameID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int((end - start) / 60),
	}
}

func TestRecompute_EmptyHistory(t *testing.T) {
	store := newFakeStore()
	r := newTestReconciler(store, time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC))

	stats, err := r.Recompute(1)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalTime)
	assert.Equal(t, 0, stats.SessionCount)
	assert.Nil(t, stats.LastPlayed)
	assert.Empty(t, stats.Daily())
}

func TestRecompute_Totals(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 15, 14, 0, 0), ts(loc, 2024, time.June, 15, 15, 0, 0)),
		session(1, ts(loc, 2024, time.June, 16, 9, 0, 0), ts(loc, 2024, time.June, 16, 9, 30, 0)),
		session(2, ts(loc, 2024, time.June, 16, 9, 0, 0), ts(loc, 2024, time.June, 16, 11, 0, 0)), // other game
	}

	stats, err := newTestReconciler(store, now).Recompute(1)
	require.NoError(t, err)

	assert.Equal(t, 90, stats.TotalTime)
	assert.Equal(t, 2, stats.SessionCount)
	require.NotNil(t, stats.LastPlayed)
	assert.Equal(t, ts(loc, 2024, time.June, 16, 9, 30, 0), *stats.LastPlayed)

	daily := stats.Daily()
	require.Len(t, daily, 2)
	assert.Equal(t, models.DailyStat{Date: "2024-06-16", Playtime: 30}, daily[0])
	assert.Equal(t, models.DailyStat{Date: "2024-06-15", Playtime: 60}, daily[1])
}

// The bucket sum must equal the total for same-day and
// cross-midnight histories alike.
func TestRecompute_AggregateInvariant(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 14, 23, 40, 0), ts(loc, 2024, time.June, 15, 0, 20, 0)),
		session(1, ts(loc, 2024, time.June, 15, 22, 0, 0), ts(loc, 2024, time.June, 16, 0, 30, 0)),
		session(1, ts(loc, 2024, time.June, 16, 9, 0, 0), ts(loc, 2024, time.June, 16, 10, 13, 0)),
	}

	stats, err := newTestReconciler(store, now).Recompute(1)
	require.NoError(t, err)

	sum := 0
	for _, d := range stats.Daily() {
		sum += d.Playtime
	}
	assert.Equal(t, stats.TotalTime, sum)
}

func TestRecompute_Idempotent(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 15, 23, 40, 0), ts(loc, 2024, time.June, 16, 0, 20, 0)),
		session(1, ts(loc, 2024, time.June, 16, 9, 0, 0), ts(loc, 2024, time.June, 16, 9, 45, 0)),
	}

	r := newTestReconciler(store, now)

	first, err := r.Recompute(1)
	require.NoError(t, err)
	second, err := r.Recompute(1)
	require.NoError(t, err)

	assert.Equal(t, first.TotalTime, second.TotalTime)
	assert.Equal(t, first.SessionCount, second.SessionCount)
	assert.Equal(t, first.Daily(), second.Daily())
}

// A live counter that pushed today's bucket past the
// session-derived value must never be regressed.
func TestRecompute_MonotonicToday(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 16, 9, 0, 0), ts(loc, 2024, time.June, 16, 9, 30, 0)),
	}
	prev := &models.Statistics{GameID: 1, TotalTime: 30, SessionCount: 1}
	require.NoError(t, prev.SetDaily([]models.DailyStat{
		{Date: "2024-06-16", Playtime: 45}, // live counter ran ahead
	}))
	store.stats[1] = prev

	stats, err := newTestReconciler(store, now).Recompute(1)
	require.NoError(t, err)

	daily := stats.Daily()
	require.NotEmpty(t, daily)
	assert.Equal(t, models.DailyStat{Date: "2024-06-16", Playtime: 45}, daily[0])
}

// Stale values for past dates are replaced, not merged.
func TestRecompute_PastDatesAuthoritative(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 15, 14, 0, 0), ts(loc, 2024, time.June, 15, 15, 0, 0)),
	}
	prev := &models.Statistics{GameID: 1}
	require.NoError(t, prev.SetDaily([]models.DailyStat{
		{Date: "2024-06-15", Playtime: 999}, // stale overshoot on a past day
		{Date: "2024-06-10", Playtime: 25},  // date with no surviving sessions
	}))
	store.stats[1] = prev

	stats, err := newTestReconciler(store, now).Recompute(1)
	require.NoError(t, err)

	daily := stats.Daily()
	require.Len(t, daily, 2)
	assert.Equal(t, models.DailyStat{Date: "2024-06-16", Playtime: 0}, daily[0])
	assert.Equal(t, models.DailyStat{Date: "2024-06-15", Playtime: 60}, daily[1])
}

// Once a game has statistics, "no activity today" is an explicit
// zero bucket rather than a missing entry.
func TestRecompute_ZeroBucketForToday(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, loc)

	store := newFakeStore()
	store.sessions = []models.Session{
		session(1, ts(loc, 2024, time.June, 15, 14, 0, 0), ts(loc, 2024, time.June, 15, 15, 0, 0)),
	}

	stats, err := newTestReconciler(store, now).Recompute(1)
	require.NoError(t, err)

	daily := stats.Daily()
	require.Len(t, daily, 2)
	assert.Equal(t, models.DailyStat{Date: "2024-06-20", Playtime: 0}, daily[0])
	assert.Equal(t, models.DailyStat{Date: "2024-06-15", Playtime: 60}, daily[1])
}

func TestRecompute_StoreErrors(t *testing.T) {
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC)

	t.Run("list error", func(t *testing.T) {
		store := newFakeStore()
		store.listErr = errors.New("boom")
		_, err := newTestReconciler(store, now).Recompute(1)
		assert.Error(t, err)
	})

	t.Run("put error", func(t *testing.T) {
		store := newFakeStore()
		store.putErr = errors.New("boom")
		_, err := newTestReconciler(store, now).Recompute(1)
		assert.Error(t, err)
	})
}

func TestFormatted_GuaranteesToday(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, loc)

	t.Run("no stored statistics", func(t *testing.T) {
		store := newFakeStore()
		formatted, err := newTestReconciler(store, now).Formatted(1)
		require.NoError(t, err)

		assert.Equal(t, 0, formatted.TotalMinutes)
		assert.Equal(t, 0, formatted.TodayMinutes)
		require.Len(t, formatted.Daily, 1)
		assert.Equal(t, models.DailyStat{Date: "2024-06-16", Playtime: 0}, formatted.Daily[0])
	})

	t.Run("stored without today", func(t *testing.T) {
		store := newFakeStore()
		prev := &models.Statistics{GameID: 1, TotalTime: 60, SessionCount: 1}
		require.NoError(t, prev.SetDaily([]models.DailyStat{
			{Date: "2024-06-15", Playtime: 60},
		}))
		store.stats[1] = prev

		formatted, err := newTestReconciler(store, now).Formatted(1)
		require.NoError(t, err)

		assert.Equal(t, 60, formatted.TotalMinutes)
		assert.Equal(t, 0, formatted.TodayMinutes)
		require.Len(t, formatted.Daily, 2)
		assert.Equal(t, "2024-06-16", formatted.Daily[0].Date)
	})

	t.Run("stored with today", func(t *testing.T) {
		store := newFakeStore()
		prev := &models.Statistics{GameID: 1, TotalTime: 75, SessionCount: 2}
		require.NoError(t, prev.SetDaily([]models.DailyStat{
			{Date: "2024-06-16", Playtime: 15},
			{Date: "2024-06-15", Playtime: 60},
		}))
		store.stats[1] = prev

		formatted, err := newTestReconciler(store, now).Formatted(1)
		require.NoError(t, err)

		assert.Equal(t, 15, formatted.TodayMinutes)
		require.Len(t, formatted.Daily, 2)
	})
}
