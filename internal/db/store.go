package db

import "github.com/yumesaka/playtrack/internal/models"

// Store adapts the package-level services to the interfaces the
// reconciler and lifecycle listener accept.
type Store struct{}

func (Store) AppendSession(gameID uint, startTime, endTime int64, durationMinutes int, date string) (*models.Session, error) {
	return AppendSession(gameID, startTime, endTime, durationMinutes, date)
}

func (Store) ListAllSessions(gameID uint) ([]models.Session, error) {
	return ListAllSessions(gameID)
}

func (Store) InitStatistics(gameID uint) error {
	return InitStatistics(gameID)
}

func (Store) GetStatistics(gameID uint) (*models.Statistics, error) {
	return GetStatistics(gameID)
}

func (Store) PutStatistics(gameID uint, totalTime, sessionCount int, lastPlayed *int64, daily []models.DailyStat) error {
	return PutStatistics(gameID, totalTime, sessionCount, lastPlayed, daily)
}

func (Store) GetGameByID(gameID uint) (*models.Game, error) {
	return GetGameByID(gameID)
}
