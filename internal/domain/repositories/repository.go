package repositories

import (
	"context"

	"github.com/ak/larder/internal/domain/models"
)

// RecipeRepository loads and persists the whole recipe collection.
// SaveAll replaces the stored snapshot; the last writer wins.
type RecipeRepository interface {
	LoadAll(ctx context.Context) ([]*models.Recipe, error)
	SaveAll(ctx context.Context, recipes []*models.Recipe) error
}

// InventoryRepository loads and persists the whole grocery/inventory ledger
type InventoryRepository interface {
	LoadAll(ctx context.Context) ([]*models.InventoryItem, error)
	SaveAll(ctx context.Context, items []*models.InventoryItem) error
}

// HealthChecker is implemented by stores that can report readiness
type HealthChecker interface {
	Health(ctx context.Context) error
}
