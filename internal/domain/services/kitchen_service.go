package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/parser"
	"github.com/ak/larder/internal/domain/repositories"
	apperrors "github.com/ak/larder/internal/pkg/errors"
	"github.com/ak/larder/internal/pkg/logger"
	"go.uber.org/zap"
)

// KitchenService is the session context: it owns the recipe catalog and the
// inventory ledger loaded from the record store and runs every core
// operation against them
type KitchenService interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Replace(ctx context.Context, recipes []*models.Recipe, items []*models.InventoryItem) error

	ListView(by SortCriteria) []RecipeListEntry
	DetailView(name string) (*RecipeDetail, error)
	Availability(name string) models.AvailabilityResult
	FindMakeable() []string
	CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*models.Recipe, error)
	AddRecipe(ctx context.Context, recipe *models.Recipe) error
	Recipes() []*models.Recipe

	SetPendingQuantity(name string, quantity int) error
	SetPendingQuantityText(name, raw string) error
	ClearPending(name string) error

	Commit(ctx context.Context) (*CommitResult, error)
	Release(ctx context.Context, name string, batches int) ([]GroceryUpdate, error)
	ShoppingList() []models.InventoryItem
	InventoryItems() []models.InventoryItem
	InventoryItem(food string) (models.InventoryItem, error)
}

// RecipeListEntry is one row of the recipe list view
type RecipeListEntry struct {
	Name            string  `json:"name"`
	PendingQuantity int     `json:"pending_quantity"`
	IsMakable       bool    `json:"is_makable"`
	MissingCount    int     `json:"missing_count"`
	MakableFraction float64 `json:"makable_fraction"`
	TotalTime       int     `json:"total_time"`
}

// RecipeDetail is the instructions view of a single recipe
type RecipeDetail struct {
	Name            string                    `json:"name"`
	PrepTime        int                       `json:"prep_time"`
	CookTime        int                       `json:"cook_time"`
	PendingQuantity int                       `json:"pending_quantity"`
	Ingredients     []models.IngredientStatus `json:"ingredients"`
	Directions      []models.Direction        `json:"directions"`
	Availability    models.AvailabilityResult `json:"availability"`
}

// CreateRecipeRequest carries a recipe in its delimited record form
type CreateRecipeRequest struct {
	Name        string `json:"name" binding:"required"`
	Ingredients string `json:"ingredients"` // "2 carrot, 1 salt"
	PrepTime    int    `json:"prep_time" binding:"min=0"`
	CookTime    int    `json:"cook_time" binding:"min=0"`
	Directions  string `json:"directions"` // "chop, boil"
}

// CommitResult reports a commit to groceries
type CommitResult struct {
	Recipes []string             `json:"recipes"`
	Demand  []models.DemandEntry `json:"demand"`
	Updates []GroceryUpdate      `json:"updates"`
}

type kitchenService struct {
	mu            sync.RWMutex
	recipeRepo    repositories.RecipeRepository
	inventoryRepo repositories.InventoryRepository
	reconciler    *Reconciler
	logger        *logger.Logger

	catalog   *models.Catalog
	inventory *models.Inventory
}

// NewKitchenService creates a kitchen with empty collections; call Load to
// read the record store
func NewKitchenService(
	recipeRepo repositories.RecipeRepository,
	inventoryRepo repositories.InventoryRepository,
	reconciler *Reconciler,
	log *logger.Logger,
) KitchenService {
	catalog, _ := models.NewCatalog(nil)
	inventory, _ := models.NewInventory(nil)
	return &kitchenService{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		reconciler:    reconciler,
		logger:        log.WithComponent("kitchen"),
		catalog:       catalog,
		inventory:     inventory,
	}
}

func (s *kitchenService) Load(ctx context.Context) error {
	recipes, err := s.recipeRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}
	items, err := s.inventoryRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	catalog, inventory, err := buildCollections(recipes, items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = catalog
	s.inventory = inventory
	s.mu.Unlock()

	s.logger.Info("Loaded kitchen",
		zap.Int("recipes", catalog.Len()),
		zap.Int("inventory_items", inventory.Len()),
	)
	return nil
}

func (s *kitchenService) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist(ctx)
}

// persist writes both collections; callers hold the lock
func (s *kitchenService) persist(ctx context.Context) error {
	if err := s.recipeRepo.SaveAll(ctx, s.catalog.Recipes()); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	if err := s.inventoryRepo.SaveAll(ctx, s.inventory.Items()); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

func (s *kitchenService) Replace(ctx context.Context, recipes []*models.Recipe, items []*models.InventoryItem) error {
	catalog, inventory, err := buildCollections(recipes, items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.inventory = inventory
	return s.persist(ctx)
}

func (s *kitchenService) ListView(by SortCriteria) []RecipeListEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev := NewEvaluator(s.inventory)
	sorted := SortRecipes(s.catalog.Recipes(), by, ev)

	out := make([]RecipeListEntry, len(sorted))
	for i, r := range sorted {
		result := ev.Evaluate(r)
		out[i] = RecipeListEntry{
			Name:            r.Name,
			PendingQuantity: r.PendingQuantity,
			IsMakable:       result.IsMakable(),
			MissingCount:    result.MissingCount,
			MakableFraction: result.MakableFraction,
			TotalTime:       r.TotalTime(),
		}
	}
	return out
}

func (s *kitchenService) DetailView(name string) (*RecipeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe := s.catalog.Get(name)
	if recipe == nil {
		return nil, apperrors.UnknownRecipe(name)
	}

	ev := NewEvaluator(s.inventory)
	return &RecipeDetail{
		Name:            recipe.Name,
		PrepTime:        recipe.PrepTime,
		CookTime:        recipe.CookTime,
		PendingQuantity: recipe.PendingQuantity,
		Ingredients:     ev.Statuses(recipe),
		Directions:      append([]models.Direction(nil), recipe.Directions...),
		Availability:    ev.Evaluate(recipe),
	}, nil
}

func (s *kitchenService) Availability(name string) models.AvailabilityResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := NewEvaluator(s.inventory).Evaluate(s.catalog.Get(name))
	result.RecipeName = name
	return result
}

func (s *kitchenService) FindMakeable() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewEvaluator(s.inventory).FindMakeable(s.catalog.Recipes())
}

func (s *kitchenService) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*models.Recipe, error) {
	if req.Name == "" {
		return nil, apperrors.InvalidInput("recipe name is required")
	}
	if req.PrepTime < 0 || req.CookTime < 0 {
		return nil, apperrors.InvalidInput("prep_time and cook_time must be non-negative")
	}

	ingredients, err := parser.ParseIngredients(req.Name, req.Ingredients)
	if err != nil {
		return nil, err
	}
	directions, err := parser.ParseDirections(req.Name, req.Directions)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:        req.Name,
		Ingredients: ingredients,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Directions:  directions,
	}
	if err := s.AddRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe.Clone(), nil
}

// AddRecipe appends recipe to the catalog and persists the recipe collection.
// The catalog is unchanged when the name is taken or the save fails.
func (s *kitchenService) AddRecipe(ctx context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := models.NewCatalog(append(s.catalog.Recipes(), recipe.Clone()))
	if err != nil {
		return duplicateError(err)
	}
	if err := s.recipeRepo.SaveAll(ctx, next.Recipes()); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	s.catalog = next

	s.logger.WithRecipe(recipe.Name).Info("Added recipe", zap.Int("ingredients", len(recipe.Ingredients)))
	return nil
}

// Recipes returns copies of the catalog in order
func (s *kitchenService) Recipes() []*models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := s.catalog.Recipes()
	out := make([]*models.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}

func (s *kitchenService) SetPendingQuantity(name string, quantity int) error {
	if quantity < 0 || quantity > models.MaxPendingQuantity {
		return apperrors.InvalidQuantity(strconv.Itoa(quantity))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipe := s.catalog.Get(name)
	if recipe == nil {
		return apperrors.UnknownRecipe(name)
	}
	recipe.PendingQuantity = quantity
	s.logger.WithRecipe(name).Debug("Set pending quantity", zap.Int("quantity", quantity))
	return nil
}

func (s *kitchenService) SetPendingQuantityText(name, raw string) error {
	quantity, err := parser.ParseQuantity(raw)
	if err != nil {
		return err
	}
	return s.SetPendingQuantity(name, quantity)
}

func (s *kitchenService) ClearPending(name string) error {
	return s.SetPendingQuantity(name, 0)
}

func (s *kitchenService) Commit(ctx context.Context) (*CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selections := PendingSelections(s.catalog.Recipes())
	demand := Consolidate(selections)

	snapshot := cloneInventory(s.inventory)
	updates := s.reconciler.Reconcile(demand, s.inventory)

	if err := s.persist(ctx); err != nil {
		s.inventory = snapshot
		return nil, err
	}

	result := &CommitResult{
		Recipes: make([]string, len(selections)),
		Demand:  demand.Entries(),
		Updates: updates,
	}
	for i, sel := range selections {
		result.Recipes[i] = sel.Recipe.Name
	}

	s.logger.Info("Committed recipes to groceries",
		zap.Strings("recipes", result.Recipes),
		zap.Int("ingredients", demand.Len()),
	)
	return result, nil
}

func (s *kitchenService) Release(ctx context.Context, name string, batches int) ([]GroceryUpdate, error) {
	if batches <= 0 || batches > models.MaxPendingQuantity {
		return nil, apperrors.InvalidQuantity(strconv.Itoa(batches))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipe := s.catalog.Get(name)
	if recipe == nil {
		return nil, apperrors.UnknownRecipe(name)
	}

	demand := Consolidate([]Selection{{Recipe: recipe, Multiplier: batches}})
	snapshot := cloneInventory(s.inventory)
	updates := s.reconciler.Release(demand, s.inventory)

	if err := s.inventoryRepo.SaveAll(ctx, s.inventory.Items()); err != nil {
		s.inventory = snapshot
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}

	s.logger.WithRecipe(name).Info("Released recipe from groceries", zap.Int("batches", batches))
	return updates, nil
}

func (s *kitchenService) ShoppingList() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.InventoryItem{}
	for _, item := range s.inventory.Items() {
		if item.NeedToBuy {
			out = append(out, *item)
		}
	}
	return out
}

func (s *kitchenService) InventoryItems() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.inventory.Items()
	out := make([]models.InventoryItem, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out
}

func (s *kitchenService) InventoryItem(food string) (models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.inventory.Get(food)
	if item == nil {
		return models.InventoryItem{}, apperrors.UnknownIngredient(food)
	}
	return *item, nil
}

func buildCollections(recipes []*models.Recipe, items []*models.InventoryItem) (*models.Catalog, *models.Inventory, error) {
	catalog, err := models.NewCatalog(recipes)
	if err != nil {
		return nil, nil, duplicateError(err)
	}
	inventory, err := models.NewInventory(items)
	if err != nil {
		return nil, nil, duplicateError(err)
	}
	return catalog, inventory, nil
}

func duplicateError(err error) error {
	var dup *models.DuplicateKeyError
	if errors.As(err, &dup) {
		return apperrors.AlreadyExists(fmt.Sprintf("%s %q", dup.Collection, dup.Key))
	}
	return err
}

func cloneInventory(inv *models.Inventory) *models.Inventory {
	items := inv.Items()
	copies := make([]*models.InventoryItem, len(items))
	for i, item := range items {
		c := *item
		copies[i] = &c
	}
	clone, _ := models.NewInventory(copies)
	return clone
}
