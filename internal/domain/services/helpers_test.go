package services

import (
	"testing"

	"github.com/ak/larder/internal/domain/models"
	"github.com/stretchr/testify/require"
)

func soupRecipe() *models.Recipe {
	return &models.Recipe{
		Name:        "Soup",
		Ingredients: []models.IngredientEntry{{Amount: 2, Name: "carrot"}, {Amount: 1, Name: "salt"}},
		PrepTime:    10,
		CookTime:    20,
		Directions:  []models.Direction{{Step: 1, Text: "chop"}, {Step: 2, Text: "boil"}},
	}
}

func stocked(name string, n int) *models.InventoryItem {
	return &models.InventoryItem{FoodName: name, FoodType: "pantry", IsStocked: true, StockedNum: n}
}

func newInventory(t *testing.T, items ...*models.InventoryItem) *models.Inventory {
	t.Helper()
	inv, err := models.NewInventory(items)
	require.NoError(t, err)
	return inv
}

func names(recipes []*models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}
