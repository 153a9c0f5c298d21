package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Drinks  *DrinkRepository
	Limits  *DailyLimitRepository
	Intakes *IntakeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Drinks:  NewDrinkRepository(database),
		Limits:  NewDailyLimitRepository(database),
		Intakes: NewIntakeRepository(database),
	}
}
