package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// DailyStat is aggregated playtime for one local calendar date.
type DailyStat struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Playtime int    `json:"playtime"` // minutes
}

// Statistics is the persisted aggregate for one game. It is fully
// recomputed from the session history after every session close;
// DailyStats is stored as a JSON column sorted descending by date.
type Statistics struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GameID       uint   `gorm:"not null;uniqueIndex" json:"game_id"`
	TotalTime    int    `gorm:"default:0" json:"total_time"` // minutes
	SessionCount int    `gorm:"default:0" json:"session_count"`
	LastPlayed   *int64 `json:"last_played"` // unix seconds, nil if never played
	DailyStats   string `json:"-"`           // JSON-encoded []DailyStat
}

// Daily decodes the stored bucket list. An empty or missing column
// decodes to an empty slice, never an error.
func (s *Statistics) Daily() []DailyStat {
	if s.DailyStats == "" {
		return []DailyStat{}
	}
	var daily []DailyStat
	if err := json.Unmarshal([]byte(s.DailyStats), &daily); err != nil {
		return []DailyStat{}
	}
	return daily
}

// SetDaily encodes the bucket list into the stored column.
func (s *Statistics) SetDaily(daily []DailyStat) error {
	data, err := json.Marshal(daily)
	if err != nil {
		return err
	}
	s.DailyStats = string(data)
	return nil
}
