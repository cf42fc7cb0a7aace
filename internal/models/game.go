package models

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a tracked library entry with its launch and
// backup configuration
type Game struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title      string `gorm:"not null" json:"title"`
	ExePath    string `json:"exe_path"`
	SavePath   string `json:"save_path"`
	AutoBackup bool   `gorm:"default:false" json:"auto_backup"`
	MaxBackups int    `gorm:"default:20" json:"max_backups"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:GameID" json:"sessions"`
}
