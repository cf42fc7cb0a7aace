package models

import (
	"time"

	"gorm.io/gorm"
)

// Session represents one closed play interval for a game.
// Rows are immutable once written; only the lifecycle listener
// creates them.
type Session struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GameID          uint   `gorm:"not null;index" json:"game_id"`
	StartTime       int64  `gorm:"not null" json:"start_time"` // unix seconds
	EndTime         int64  `gorm:"not null" json:"end_time"`   // unix seconds
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `gorm:"index" json:"date"` // local date of EndTime, YYYY-MM-DD

	// Relationships
	Game Game `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"game"`
}
