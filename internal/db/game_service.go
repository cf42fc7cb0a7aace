package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yumesaka/playtrack/internal/models"
)

// CreateGameRequest holds the data needed to register a new game
type CreateGameRequest struct {
	Title      string
	ExePath    string
	SavePath   string
	AutoBackup bool
	MaxBackups int
}

// CreateGame registers a new game in the library
func CreateGame(req CreateGameRequest) (*models.Game, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("game title cannot be empty")
	}

	maxBackups := req.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 20
	}

	game := models.Game{
		Title:      title,
		ExePath:    req.ExePath,
		SavePath:   req.SavePath,
		AutoBackup: req.AutoBackup,
		MaxBackups: maxBackups,
	}

	if err := DB.Create(&game).Error; err != nil {
		return nil, err
	}

	return &game, nil
}

// GetGameByID retrieves a game by ID
func GetGameByID(id uint) (*models.Game, error) {
	var game models.Game

	err := DB.First(&game, id).Error
	if err != nil {
		return nil, fmt.Errorf("game #%d not found", id)
	}

	return &game, nil
}

// GetGames retrieves all registered games ordered by title
func GetGames() ([]models.Game, error) {
	var games []models.Game

	if err := DB.Order("title ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	return games, nil
}

// RemoveGame deletes a game together with its sessions and statistics
func RemoveGame(id uint) error {
	game, err := GetGameByID(id)
	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.Statistics{}).Error; err != nil {
			return err
		}
		return tx.Delete(game).Error
	})
}
