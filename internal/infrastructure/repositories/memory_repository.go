package repositories

import (
	"context"
	"sync"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/repositories"
)

// Compile-time interface checks.
var (
	_ repositories.RecipeRepository    = (*MemoryRecipeRepository)(nil)
	_ repositories.InventoryRepository = (*MemoryInventoryRepository)(nil)
)

// MemoryRecipeRepository keeps a recipe snapshot in process. Safe for concurrent access.
type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes []*models.Recipe
	// SaveErr, when set, is returned by SaveAll
	SaveErr error
}

// NewMemoryRecipeRepository creates a store seeded with recipes
func NewMemoryRecipeRepository(recipes ...*models.Recipe) *MemoryRecipeRepository {
	return &MemoryRecipeRepository{recipes: cloneRecipes(recipes)}
}

func (r *MemoryRecipeRepository) LoadAll(ctx context.Context) ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRecipes(r.recipes), nil
}

func (r *MemoryRecipeRepository) SaveAll(ctx context.Context, recipes []*models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.recipes = cloneRecipes(recipes)
	return nil
}

// MemoryInventoryRepository keeps an inventory snapshot in process. Safe for concurrent access.
type MemoryInventoryRepository struct {
	mu    sync.RWMutex
	items []*models.InventoryItem
	// SaveErr, when set, is returned by SaveAll
	SaveErr error
}

// NewMemoryInventoryRepository creates a store seeded with items
func NewMemoryInventoryRepository(items ...*models.InventoryItem) *MemoryInventoryRepository {
	return &MemoryInventoryRepository{items: cloneItems(items)}
}

func (r *MemoryInventoryRepository) LoadAll(ctx context.Context) ([]*models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneItems(r.items), nil
}

func (r *MemoryInventoryRepository) SaveAll(ctx context.Context, items []*models.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.items = cloneItems(items)
	return nil
}

func cloneRecipes(in []*models.Recipe) []*models.Recipe {
	out := make([]*models.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func cloneItems(in []*models.InventoryItem) []*models.InventoryItem {
	out := make([]*models.InventoryItem, len(in))
	for i, item := range in {
		c := *item
		out[i] = &c
	}
	return out
}
