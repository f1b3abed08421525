package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	burger = FoodItem{
		UID:       "item_burger",
		VendorUID: "vendor_1",
		Name:      "Veggie Burger",
		Price:     500,
		Currency:  "EUR",
		Nutrition: &Nutrition{
			Calories: 300,
			Protein:  12,
			Carbs:    40,
			Fat:      9,
		},
		DietaryTags:     []string{"vegetarian"},
		PrepTimeMinutes: 15,
	}
	fries = FoodItem{
		UID:       "item_fries",
		VendorUID: "vendor_1",
		Name:      "Fries",
		Price:     300,
		Currency:  "EUR",
		Nutrition: &Nutrition{
			Calories: 150,
			Protein:  2,
			Carbs:    20,
			Fat:      8,
		},
		PrepTimeMinutes: 5,
	}
	mysteryShake = FoodItem{
		UID:       "item_shake",
		VendorUID: "vendor_2",
		Name:      "Mystery Shake",
		Price:     450,
		Currency:  "EUR",
		// vendor never supplied nutritional info
		Nutrition: nil,
	}
)

func TestAddItem(t *testing.T) {

	t.Run("Repeated adds of same item yield one line with summed quantity", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 1, "")
		state = state.withItemAdded(burger, 2, "")
		state = state.withItemAdded(burger, 1, "")

		assert.Len(t, state.Lines, 1)
		assert.Equal(t, 4, state.Lines[0].Quantity)
		assert.Equal(t, 4, state.ItemCount())
		assert.Equal(t, 2000, state.TotalPrice)
	})

	t.Run("Non-positive quantity on add is clamped to 1", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 0, "")

		assert.Len(t, state.Lines, 1)
		assert.Equal(t, 1, state.Lines[0].Quantity)
	})

	t.Run("Repeat add without instructions keeps previous instructions", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 1, "no onions")
		state = state.withItemAdded(burger, 1, "")

		assert.Len(t, state.Lines, 1)
		assert.Equal(t, 2, state.Lines[0].Quantity)
		assert.Equal(t, "no onions", state.Lines[0].Instructions)
	})

	t.Run("Repeat add with instructions overwrites previous instructions", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 1, "no onions")
		state = state.withItemAdded(burger, 1, "extra sauce")

		assert.Equal(t, "extra sauce", state.Lines[0].Instructions)
	})

	t.Run("Lines keep insertion order", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 2, "")
		state = state.withItemAdded(fries, 1, "")
		state = state.withItemAdded(burger, 1, "")

		assert.Len(t, state.Lines, 2)
		assert.Equal(t, "item_burger", state.Lines[0].Item.UID)
		assert.Equal(t, "item_fries", state.Lines[1].Item.UID)
	})

	t.Run("Missing nutritional info counts as zero", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(mysteryShake, 3, "")
		state = state.withItemAdded(fries, 1, "")

		assert.Equal(t, 1650, state.TotalPrice)
		assert.Equal(t, 150.0, state.NutritionSummary.Calories)
		assert.Equal(t, 2.0, state.NutritionSummary.Protein)
	})
}

func TestRemoveItem(t *testing.T) {

	t.Run("Remove existing line", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 2, "")
		state = state.withItemAdded(fries, 1, "")

		state = state.withItemRemoved(burger.UID)

		assert.Len(t, state.Lines, 1)
		assert.Equal(t, "item_fries", state.Lines[0].Item.UID)
		assert.Equal(t, 300, state.TotalPrice)
	})

	t.Run("Remove of unknown uid is a no-op", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		got := state.withItemRemoved("item_unknown")

		assert.Equal(t, state, got)
	})
}

func TestUpdateQuantity(t *testing.T) {

	t.Run("Absolute set, not delta", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		state = state.withQuantity(burger.UID, 5)

		assert.Equal(t, 5, state.Lines[0].Quantity)
		assert.Equal(t, 2500, state.TotalPrice)
	})

	t.Run("Quantity zero removes the line", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		state = state.withQuantity(burger.UID, 0)

		assert.Empty(t, state.Lines)
		assert.Equal(t, 0, state.TotalPrice)
	})

	t.Run("Negative quantity removes the line", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		state = state.withQuantity(burger.UID, -1)

		assert.Empty(t, state.Lines)
	})

	t.Run("Unknown uid is a no-op", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		got := state.withQuantity("item_unknown", 7)

		assert.Equal(t, state, got)
	})
}

func TestUpdateInstructions(t *testing.T) {

	t.Run("Replace instructions without touching totals", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "no onions")

		got := state.withInstructions(burger.UID, "extra pickles")

		assert.Equal(t, "extra pickles", got.Lines[0].Instructions)
		assert.Equal(t, state.TotalPrice, got.TotalPrice)
		assert.Equal(t, state.NutritionSummary, got.NutritionSummary)
	})

	t.Run("Unknown uid is a no-op", func(t *testing.T) {
		state := emptyState().withItemAdded(burger, 2, "")

		got := state.withInstructions("item_unknown", "whatever")

		assert.Equal(t, state, got)
	})
}

func TestDerivedTotals(t *testing.T) {

	t.Run("Totals always match a from-scratch reduction", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 2, "")
		state = state.withItemAdded(fries, 1, "")
		state = state.withItemAdded(mysteryShake, 4, "")
		state = state.withQuantity(fries.UID, 3)
		state = state.withItemRemoved(mysteryShake.UID)

		fresh := recompute(state.Lines)
		assert.Equal(t, fresh.TotalPrice, state.TotalPrice)
		assert.Equal(t, fresh.NutritionSummary, state.NutritionSummary)
	})

	t.Run("Spec scenario: burger x2 plus fries x1", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 2, "")
		state = state.withItemAdded(fries, 1, "")

		assert.Equal(t, 1300, state.TotalPrice)
		assert.Equal(t, 750.0, state.NutritionSummary.Calories)
		assert.Len(t, state.Lines, 2)
		assert.Equal(t, 3, state.ItemCount())

		// then shrink burger to a single one
		state = state.withQuantity(burger.UID, 1)
		assert.Equal(t, 800, state.TotalPrice)
		assert.Equal(t, 450.0, state.NutritionSummary.Calories)
		assert.Len(t, state.Lines, 2)

		// and drop it entirely
		state = state.withQuantity(burger.UID, 0)
		assert.Len(t, state.Lines, 1)
		assert.Equal(t, "item_fries", state.Lines[0].Item.UID)
		assert.Equal(t, 300, state.TotalPrice)
	})
}

func TestClear(t *testing.T) {

	t.Run("Clear resets to the empty state", func(t *testing.T) {
		state := emptyState()
		state = state.withItemAdded(burger, 2, "no onions")
		state = state.withItemAdded(fries, 1, "")

		got := emptyState()

		assert.Empty(t, got.Lines)
		assert.Equal(t, 0, got.TotalPrice)
		assert.Equal(t, Nutrition{}, got.NutritionSummary)
		assert.True(t, got.IsEmpty())
		assert.NotEqual(t, state, got)
	})
}
