package models

type Drink struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	CaffeinePerServing int    `gorm:"not null"`
	ServingSize        int    `gorm:"not null"`
	Icon               string `gorm:"not null;default:''"`
}

type DefaultDrink struct {
	Name               string
	CaffeinePerServing int
	ServingSize        int
}

func DefaultDrinks() []DefaultDrink {
	return []DefaultDrink{
		{Name: "Espresso", CaffeinePerServing: 63, ServingSize: 30},
		{Name: "Drip", CaffeinePerServing: 95, ServingSize: 240},
		{Name: "Latte", CaffeinePerServing: 63, ServingSize: 240},
	}
}
