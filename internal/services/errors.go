package services

import "errors"

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidSince       = errors.New("invalid since instant")
	ErrInvalidDrink       = errors.New("invalid drink")
	ErrDrinkNotFound      = errors.New("drink not found")
	ErrDrinkInUse         = errors.New("drink is referenced by intake records")
	ErrInvalidServings    = errors.New("invalid servings")
	ErrIntakeNotFound     = errors.New("intake not found")
	ErrInvalidLimit       = errors.New("invalid daily limit")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("weak password")
)
