package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yumesaka/playtrack/internal/models"
)

// InitStatistics ensures a zeroed statistics row exists for the
// game. Calling it again for the same game is a no-op.
func InitStatistics(gameID uint) error {
	var existing models.Statistics

	err := DB.Where("game_id = ?", gameID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	stats := models.Statistics{GameID: gameID}
	if err := stats.SetDaily([]models.DailyStat{}); err != nil {
		return err
	}

	return DB.Create(&stats).Error
}

// GetStatistics returns the persisted aggregate for a game, or nil
// if the game has never been tracked.
func GetStatistics(gameID uint) (*models.Statistics, error) {
	var stats models.Statistics

	err := DB.Where("game_id = ?", gameID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &stats, nil
}

// PutStatistics writes the full aggregate record for a game as one
// atomic upsert.
func PutStatistics(gameID uint, totalTime, sessionCount int, lastPlayed *int64, daily []models.DailyStat) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var stats models.Statistics

		err := tx.Where("game_id = ?", gameID).First(&stats).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			stats = models.Statistics{GameID: gameID}
		}

		stats.TotalTime = totalTime
		stats.SessionCount = sessionCount
		stats.LastPlayed = lastPlayed
		if err := stats.SetDaily(daily); err != nil {
			return err
		}

		return tx.Save(&stats).Error
	})
}

// TodayPlaytime returns the persisted bucket value for the given
// date, or 0 when no bucket exists.
func TodayPlaytime(gameID uint, date string) (int, error) {
	stats, err := GetStatistics(gameID)
	if err != nil {
		return 0, err
	}
	if stats == nil {
		return 0, nil
	}

	for _, d := range stats.Daily() {
		if d.Date == date {
			return d.Playtime, nil
		}
	}

	return 0, nil
}
