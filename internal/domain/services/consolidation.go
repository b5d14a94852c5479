package services

import "github.com/ak/larder/internal/domain/models"

// Selection pairs a recipe with the number of batches wanted
type Selection struct {
	Recipe     *models.Recipe
	Multiplier int
}

// Consolidate scales each selected recipe's entries by its multiplier and
// sums them by ingredient name. Entries appear in first-seen order; a
// multiplier of zero or less contributes nothing.
func Consolidate(selections []Selection) *models.ConsolidatedDemand {
	demand := models.NewConsolidatedDemand()
	for _, sel := range selections {
		if sel.Recipe == nil || sel.Multiplier <= 0 {
			continue
		}
		for _, ing := range sel.Recipe.Ingredients {
			demand.Add(ing.Name, models.ScaleQuantity(max(ing.Amount, 0), sel.Multiplier))
		}
	}
	return demand
}

// PendingSelections returns one selection per recipe with a positive pending
// quantity, in the given order
func PendingSelections(recipes []*models.Recipe) []Selection {
	var out []Selection
	for _, r := range recipes {
		if r.PendingQuantity > 0 {
			out = append(out, Selection{Recipe: r, Multiplier: r.PendingQuantity})
		}
	}
	return out
}
