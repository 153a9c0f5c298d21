package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}

// CanLogin reports whether an operator has set a password for the account.
func (user User) CanLogin() bool {
	return user.PasswordHash != ""
}
