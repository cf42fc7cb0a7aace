package db

import (
	"fmt"

	"github.com/yumesaka/playtrack/internal/models"
)

// AppendSession records one closed play session for a game and
// returns the created row. Sessions are append-only.
func AppendSession(gameID uint, startTime, endTime int64, durationMinutes int, date string) (*models.Session, error) {
	if endTime <= startTime {
		return nil, fmt.Errorf("session end time %d is not after start time %d", endTime, startTime)
	}

	session := models.Session{
		GameID:          gameID,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: durationMinutes,
		Date:            date,
	}

	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessions returns a game's sessions newest-first. limit <= 0
// means no limit.
func ListSessions(gameID uint, limit, offset int) ([]models.Session, error) {
	var sessions []models.Session

	q := DB.Where("game_id = ?", gameID).Order("end_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListAllSessions returns every session for a game, for full
// statistics recomputation. No ordering is guaranteed.
func ListAllSessions(gameID uint) ([]models.Session, error) {
	var sessions []models.Session

	if err := DB.Where("game_id = ?", gameID).Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListRecentSessions returns the most recent sessions across all
// games, newest-first, with the game relationship loaded.
func ListRecentSessions(limit int) ([]models.Session, error) {
	var sessions []models.Session

	q := DB.Preload("Game").Order("end_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// CountSessions returns the number of recorded sessions for a game
func CountSessions(gameID uint) (int64, error) {
	var count int64

	err := DB.Model(&models.Session{}).Where("game_id = ?", gameID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
