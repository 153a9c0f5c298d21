package models

import "time"

// DefaultDailyLimit applies when a user has never saved a limit.
const DefaultDailyLimit = 400

// DailyLimit rows are append-only. The newest row per user is the active one.
type DailyLimit struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	LimitAmount int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}
