package services

import (
	"math"
	"testing"

	"github.com/ak/larder/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestConsolidateScalesByMultiplier(t *testing.T) {
	demand := Consolidate([]Selection{{Recipe: soupRecipe(), Multiplier: 2}})

	assert.Equal(t, []models.DemandEntry{{Name: "carrot", Amount: 4}, {Name: "salt", Amount: 2}}, demand.Entries())
}

func TestConsolidateSumsAcrossRecipes(t *testing.T) {
	stew := &models.Recipe{
		Name:        "Stew",
		Ingredients: []models.IngredientEntry{{Amount: 3, Name: "potato"}, {Amount: 1, Name: "carrot"}},
	}
	demand := Consolidate([]Selection{
		{Recipe: soupRecipe(), Multiplier: 1},
		{Recipe: stew, Multiplier: 2},
	})

	assert.Equal(t, []models.DemandEntry{
		{Name: "carrot", Amount: 4},
		{Name: "salt", Amount: 1},
		{Name: "potato", Amount: 6},
	}, demand.Entries())
}

func TestConsolidateAmountsIndependentOfOrder(t *testing.T) {
	stew := &models.Recipe{
		Name:        "Stew",
		Ingredients: []models.IngredientEntry{{Amount: 3, Name: "potato"}, {Amount: 1, Name: "carrot"}},
	}
	a := Consolidate([]Selection{{Recipe: soupRecipe(), Multiplier: 2}, {Recipe: stew, Multiplier: 1}})
	b := Consolidate([]Selection{{Recipe: stew, Multiplier: 1}, {Recipe: soupRecipe(), Multiplier: 2}})

	for _, name := range []string{"carrot", "salt", "potato"} {
		x, _ := a.Amount(name)
		y, _ := b.Amount(name)
		assert.Equal(t, x, y, name)
	}
}

func TestConsolidateSkipsNonPositiveMultipliers(t *testing.T) {
	demand := Consolidate([]Selection{
		{Recipe: soupRecipe(), Multiplier: 0},
		{Recipe: soupRecipe(), Multiplier: -1},
		{Recipe: nil, Multiplier: 3},
	})
	assert.Zero(t, demand.Len())
}

func TestConsolidateSumsDuplicateEntries(t *testing.T) {
	recipe := &models.Recipe{
		Name:        "Salty",
		Ingredients: []models.IngredientEntry{{Amount: 3, Name: "salt"}, {Amount: 1, Name: "salt"}},
	}
	demand := Consolidate([]Selection{{Recipe: recipe, Multiplier: 2}})

	amount, ok := demand.Amount("salt")
	assert.True(t, ok)
	assert.Equal(t, 8, amount)
}

func TestConsolidateSaturatesInsteadOfOverflowing(t *testing.T) {
	recipe := &models.Recipe{Name: "Bulk", Ingredients: []models.IngredientEntry{{Amount: 1 << 62, Name: "x"}}}

	demand := Consolidate([]Selection{{Recipe: recipe, Multiplier: 3}, {Recipe: recipe, Multiplier: 1}})
	amount, ok := demand.Amount("x")
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, amount)

	inv := newInventory(t)
	updates := newTestReconciler().Reconcile(demand, inv)
	assert.Equal(t, RuleCreated, updates[0].Rule)
	assert.Equal(t, math.MaxInt, inv.Get("x").BuyNum)

	newTestReconciler().Reconcile(demand, inv)
	assert.Equal(t, math.MaxInt, inv.Get("x").BuyNum, "buy_num stays non-negative across passes")
}

func TestPendingSelections(t *testing.T) {
	soup := soupRecipe()
	soup.PendingQuantity = 2
	toast := &models.Recipe{Name: "Toast"}
	stew := &models.Recipe{Name: "Stew", PendingQuantity: 1}

	selections := PendingSelections([]*models.Recipe{soup, toast, stew})
	assert.Equal(t, []Selection{{Recipe: soup, Multiplier: 2}, {Recipe: stew, Multiplier: 1}}, selections)
}
