package cart

import "fmt"

// Nutrition aggregates the nutritional facts of a single food-item or of a whole cart.
type Nutrition struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// FoodItem is an immutable value snapshot of a catalog item, taken at the
// moment the item was added to the cart. Later price or nutrition changes in
// the catalog do not affect lines already in a cart.
type FoodItem struct {
	UID             string
	VendorUID       string
	Name            string
	Description     string
	Price           int // in cents
	Currency        string
	Nutrition       *Nutrition // nil when the vendor supplied no nutritional info
	DietaryTags     []string
	Allergens       []string
	PrepTimeMinutes int
}

// Line is the single aggregated entry for one distinct food-item.
// Quantity is always >= 1: a line that would drop to 0 is removed instead.
type Line struct {
	Item         FoodItem
	Quantity     int
	Instructions string // free-text special instructions, "" means none
}

func (l Line) TotalPrice() int {
	return l.Item.Price * l.Quantity
}

// State holds the lines in insertion order plus the derived totals.
// TotalPrice and NutritionSummary are recomputed by full reduction over
// Lines after every mutation and are therefore never out of sync.
type State struct {
	Lines            []Line
	TotalPrice       int
	NutritionSummary Nutrition
}

func (s State) ItemCount() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s State) GetPriceInCurrency() string {
	currency := "EUR"
	if len(s.Lines) > 0 {
		currency = s.Lines[0].Item.Currency
	}
	return fmt.Sprintf("%s %.2f", currency, float64(s.TotalPrice)/100.0)
}
