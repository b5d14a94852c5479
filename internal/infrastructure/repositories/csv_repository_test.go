package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ak/larder/internal/domain/models"
	apperrors "github.com/ak/larder/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCSVRecipeRepositoryLoadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	writeFile(t, path, "name,ingredients,prep_time,cook_time,directions\n"+
		"Soup,\"2 carrot, 1 salt\",10,20,\"chop, boil\"\n"+
		"Toast,1 bread,1,3,toast it\n")

	recipes, err := NewCSVRecipeRepository(path).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	soup := recipes[0]
	assert.Equal(t, "Soup", soup.Name)
	assert.Equal(t, []models.IngredientEntry{{Amount: 2, Name: "carrot"}, {Amount: 1, Name: "salt"}}, soup.Ingredients)
	assert.Equal(t, []models.Direction{{Step: 1, Text: "chop"}, {Step: 2, Text: "boil"}}, soup.Directions)
	assert.Equal(t, 10, soup.PrepTime)
	assert.Equal(t, 20, soup.CookTime)
	assert.Zero(t, soup.PendingQuantity)
	assert.Equal(t, "Toast", recipes[1].Name)
}

func TestCSVRecipeRepositoryColumnsByHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	writeFile(t, path, "directions,cook_time,name,prep_time,ingredients,pending_quantity\n"+
		"stir,5,Tea,1,1 leaf,2\n")

	recipes, err := NewCSVRecipeRepository(path).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tea", recipes[0].Name)
	assert.Equal(t, 5, recipes[0].CookTime)
	assert.Equal(t, 2, recipes[0].PendingQuantity)
}

func TestCSVRecipeRepositoryMalformedIngredient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	writeFile(t, path, "name,ingredients,prep_time,cook_time,directions\n"+
		"Soup,two carrot,10,20,chop\n")

	_, err := NewCSVRecipeRepository(path).LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrMalformedIngredient))
}

func TestCSVRecipeRepositoryMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	writeFile(t, path, "name,ingredients\nSoup,1 salt\n")

	_, err := NewCSVRecipeRepository(path).LoadAll(context.Background())
	assert.ErrorContains(t, err, "prep_time")
}

func TestCSVRecipeRepositoryMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	recipes, err := NewCSVRecipeRepository(path).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestCSVRecipeRepositorySaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipes.csv")
	repo := NewCSVRecipeRepository(path)

	want := []*models.Recipe{
		{
			Name:            "Soup",
			Ingredients:     []models.IngredientEntry{{Amount: 2, Name: "carrot"}, {Amount: 1, Name: "sea salt"}},
			PrepTime:        10,
			CookTime:        20,
			Directions:      []models.Direction{{Step: 1, Text: "chop"}, {Step: 2, Text: "boil"}},
			PendingQuantity: 3,
		},
		{Name: "Water"},
	}
	require.NoError(t, repo.SaveAll(ctx, want))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0], got[0])
	assert.Equal(t, "Water", got[1].Name)
	assert.Empty(t, got[1].Ingredients)
	assert.Empty(t, got[1].Directions)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed into place")
}

func TestCSVInventoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "groceries.csv")
	writeFile(t, path, "food,food_type,is_stocked,is_low,need_to_buy,stocked_num,buy_num,in_cart\n"+
		"carrot,veg,True,False,False,1,0,False\n"+
		"salt,spice,false,false,true,0,2,true\n")

	repo := NewCSVInventoryRepository(path)
	items, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.InventoryItem{FoodName: "carrot", FoodType: "veg", IsStocked: true, StockedNum: 1}, *items[0])
	assert.Equal(t, models.InventoryItem{FoodName: "salt", FoodType: "spice", NeedToBuy: true, BuyNum: 2, InCart: true}, *items[1])

	items[0].StockedNum = 4
	require.NoError(t, repo.SaveAll(ctx, items))

	reloaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded[0].StockedNum)
	assert.Equal(t, "salt", reloaded[1].FoodName)
}

func TestCSVInventoryRepositoryRejectsBadBoolean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groceries.csv")
	writeFile(t, path, "food,is_stocked\ncarrot,maybe\n")

	_, err := NewCSVInventoryRepository(path).LoadAll(context.Background())
	assert.ErrorContains(t, err, "is_stocked")
}

func TestCSVProviderHealth(t *testing.T) {
	dir := t.TempDir()
	p := NewCSVProvider(filepath.Join(dir, "r.csv"), filepath.Join(dir, "g.csv"))
	assert.NoError(t, p.Health(context.Background()))

	p = NewCSVProvider(filepath.Join(dir, "missing", "r.csv"), filepath.Join(dir, "g.csv"))
	assert.Error(t, p.Health(context.Background()))
}
