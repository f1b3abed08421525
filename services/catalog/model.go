package catalog

import (
	"fmt"
	"time"
)

type Nutrition struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// FoodItem is owned and mutated by the vendor; customers only read it.
type FoodItem struct {
	UID             string
	VendorUID       string
	Name            string
	Description     string
	Price           int // in cents
	Currency        string
	Category        string
	Nutrition       *Nutrition
	DietaryTags     []string
	Ingredients     []string
	Allergens       []string
	IsAvailable     bool
	PrepTimeMinutes int
	CreatedAt       time.Time
	LastModified    *time.Time
}

func (f FoodItem) GetPriceInCurrency() string {
	return fmt.Sprintf("%s %.2f", f.Currency, float64(f.Price)/100.0)
}
