package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/infrastructure/config"
	"github.com/ak/larder/internal/infrastructure/database"
	"github.com/ak/larder/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *database.SQLite {
	t.Helper()
	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "larder.db")}
	db, err := database.OpenSQLite(cfg, logger.NewNop(), SQLiteModels()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteRecipeRepositoryKeepsOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)
	repo := NewSQLiteRecipeRepository(db.DB())

	recipes := []*models.Recipe{
		{Name: "Toast", Ingredients: []models.IngredientEntry{{Amount: 1, Name: "bread"}}, CookTime: 3},
		{
			Name:            "Soup",
			Ingredients:     []models.IngredientEntry{{Amount: 2, Name: "carrot"}, {Amount: 1, Name: "salt"}},
			PrepTime:        10,
			CookTime:        20,
			Directions:      []models.Direction{{Step: 1, Text: "chop"}, {Step: 2, Text: "boil"}},
			PendingQuantity: 2,
		},
	}
	require.NoError(t, repo.SaveAll(ctx, recipes))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Toast", got[0].Name)
	assert.Equal(t, recipes[1], got[1])
}

func TestSQLiteRecipeRepositorySaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRecipeRepository(openTestSQLite(t).DB())

	require.NoError(t, repo.SaveAll(ctx, []*models.Recipe{{Name: "A"}, {Name: "B"}}))
	require.NoError(t, repo.SaveAll(ctx, []*models.Recipe{{Name: "B"}}))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)

	require.NoError(t, repo.SaveAll(ctx, nil))
	got, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRecipeRepositoryDuplicateNameRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRecipeRepository(openTestSQLite(t).DB())

	require.NoError(t, repo.SaveAll(ctx, []*models.Recipe{{Name: "A"}}))
	assert.Error(t, repo.SaveAll(ctx, []*models.Recipe{{Name: "B"}, {Name: "B"}}))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestSQLiteInventoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)
	repo := NewSQLiteInventoryRepository(db.DB())

	items := []*models.InventoryItem{
		{FoodName: "salt", FoodType: "spice", NeedToBuy: true, BuyNum: 2},
		{FoodName: "carrot", FoodType: "veg", IsStocked: true, IsLow: true, StockedNum: 1, InCart: true},
	}
	require.NoError(t, repo.SaveAll(ctx, items))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *items[0], *got[0])
	assert.Equal(t, *items[1], *got[1])

	assert.NoError(t, db.Health(ctx))
}
