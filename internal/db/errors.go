package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsForeignKeyViolation reports whether err came from a foreign key check,
// either translated by gorm or raw from the SQLite driver.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
