package models

import "time"

type Intake struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"not null;index"`
	DrinkID       uint    `gorm:"not null;index"`
	Servings      float64 `gorm:"not null"`
	TotalCaffeine int     `gorm:"not null"`
	// Timestamp is seconds since the Unix epoch, UTC.
	Timestamp int64 `gorm:"not null;index"`
}

func (intake Intake) Time() time.Time {
	return time.Unix(intake.Timestamp, 0).UTC()
}

// DrinkCaffeineAmount is one row of a per-drink caffeine sum.
type DrinkCaffeineAmount struct {
	DrinkID       uint `gorm:"column:drink_id"`
	TotalCaffeine int  `gorm:"column:total_caffeine"`
}
