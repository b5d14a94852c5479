package services

import "github.com/ak/larder/internal/domain/models"

// Evaluator measures recipes against an inventory snapshot. Only stocked
// items count as on hand. A nil recipe stands for an unknown one.
type Evaluator struct {
	inventory *models.Inventory
}

// NewEvaluator creates an evaluator over inv
func NewEvaluator(inv *models.Inventory) *Evaluator {
	return &Evaluator{inventory: inv}
}

func (e *Evaluator) onHand(ingredient string) int {
	item := e.inventory.Get(ingredient)
	if item == nil {
		return 0
	}
	return item.OnHand()
}

// Missing returns how much of ingredient the recipe still needs, judged by
// the ingredient's first entry
func (e *Evaluator) Missing(recipe *models.Recipe, ingredient string) int {
	if recipe == nil {
		return 0
	}
	required, ok := recipe.Amount(ingredient)
	if !ok {
		return 0
	}
	return max(max(required, 0)-e.onHand(ingredient), 0)
}

// TotalMissing sums Missing over every entry. Duplicate names are each
// checked against the same stock.
func (e *Evaluator) TotalMissing(recipe *models.Recipe) int {
	if recipe == nil {
		return 0
	}
	total := 0
	for _, ing := range recipe.Ingredients {
		total = models.AddQuantity(total, e.Missing(recipe, ing.Name))
	}
	return total
}

// TotalRequired sums the amount of every entry. Sums saturate, so
// TotalMissing never exceeds TotalRequired.
func (e *Evaluator) TotalRequired(recipe *models.Recipe) int {
	if recipe == nil {
		return 0
	}
	total := 0
	for _, ing := range recipe.Ingredients {
		total = models.AddQuantity(total, max(ing.Amount, 0))
	}
	return total
}

// MakableFraction is the share of required units on hand. Recipes requiring
// nothing, and unknown recipes, score 0.
func (e *Evaluator) MakableFraction(recipe *models.Recipe) float64 {
	return e.Evaluate(recipe).MakableFraction
}

// IsMakable reports whether the fraction is exactly 1
func (e *Evaluator) IsMakable(recipe *models.Recipe) bool {
	return e.Evaluate(recipe).IsMakable()
}

// Evaluate computes the full availability summary
func (e *Evaluator) Evaluate(recipe *models.Recipe) models.AvailabilityResult {
	if recipe == nil {
		return models.AvailabilityResult{}
	}
	result := models.AvailabilityResult{
		RecipeName:   recipe.Name,
		MissingCount: e.TotalMissing(recipe),
		TotalCount:   e.TotalRequired(recipe),
	}
	if result.TotalCount > 0 {
		result.MakableFraction = float64(result.TotalCount-result.MissingCount) / float64(result.TotalCount)
	}
	return result
}

// FindMakeable returns the names of makable recipes in the given order
func (e *Evaluator) FindMakeable(recipes []*models.Recipe) []string {
	names := []string{}
	for _, r := range recipes {
		if e.IsMakable(r) {
			names = append(names, r.Name)
		}
	}
	return names
}

// Statuses describes each entry of recipe against the inventory
func (e *Evaluator) Statuses(recipe *models.Recipe) []models.IngredientStatus {
	if recipe == nil {
		return nil
	}
	out := make([]models.IngredientStatus, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		item := e.inventory.Get(ing.Name)
		missing := e.Missing(recipe, ing.Name)
		inStock := item != nil && item.IsStocked
		out[i] = models.IngredientStatus{
			Amount:  ing.Amount,
			Name:    ing.Name,
			InStock: inStock,
			Enough:  inStock && missing == 0,
			Missing: missing,
		}
	}
	return out
}
