package cart

// The operations below are pure: old state in, new state out. They never
// fail. Malformed input (unknown uids, non-positive quantities) is resolved
// with no-op or clamp rules so that the caller cannot corrupt the state.

func emptyState() State {
	return State{
		Lines:            []Line{},
		TotalPrice:       0,
		NutritionSummary: Nutrition{},
	}
}

// withItemAdded merges the item into an existing line for the same food-item
// uid or appends a new line at the end. Non-empty instructions overwrite
// previous instructions on a repeat add; empty instructions leave them intact.
func (s State) withItemAdded(item FoodItem, quantity int, instructions string) State {
	if quantity < 1 {
		quantity = 1
	}

	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)

	merged := false
	for i, l := range lines {
		if l.Item.UID == item.UID {
			lines[i].Quantity += quantity
			if instructions != "" {
				lines[i].Instructions = instructions
			}
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{
			Item:         item,
			Quantity:     quantity,
			Instructions: instructions,
		})
	}

	return recompute(lines)
}

func (s State) withItemRemoved(foodItemUID string) State {
	lines := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Item.UID != foodItemUID {
			lines = append(lines, l)
		}
	}

	return recompute(lines)
}

// withQuantity sets the quantity of the matching line to an absolute value.
// A quantity of 0 or less removes the line entirely. Unknown uids are a no-op.
func (s State) withQuantity(foodItemUID string, quantity int) State {
	if quantity <= 0 {
		return s.withItemRemoved(foodItemUID)
	}

	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	for i, l := range lines {
		if l.Item.UID == foodItemUID {
			lines[i].Quantity = quantity
			break
		}
	}

	return recompute(lines)
}

// withInstructions replaces the special instructions on the matching line.
// Instructions are not priced, but the totals are recomputed anyway to keep
// every mutation on the same code path.
func (s State) withInstructions(foodItemUID string, instructions string) State {
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	for i, l := range lines {
		if l.Item.UID == foodItemUID {
			lines[i].Instructions = instructions
			break
		}
	}

	return recompute(lines)
}

// recompute derives the totals from scratch by reducing over all lines.
// Deliberately not incremental: a full reduction cannot drift from the lines.
func recompute(lines []Line) State {
	state := State{
		Lines: lines,
	}

	for _, l := range lines {
		state.TotalPrice += l.Item.Price * l.Quantity

		if l.Item.Nutrition == nil {
			// vendor data quality is not the cart's concern
			continue
		}
		state.NutritionSummary.Calories += l.Item.Nutrition.Calories * float64(l.Quantity)
		state.NutritionSummary.Protein += l.Item.Nutrition.Protein * float64(l.Quantity)
		state.NutritionSummary.Carbs += l.Item.Nutrition.Carbs * float64(l.Quantity)
		state.NutritionSummary.Fat += l.Item.Nutrition.Fat * float64(l.Quantity)
	}

	return state
}
