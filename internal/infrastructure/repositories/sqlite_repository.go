package repositories

import (
	"context"
	"fmt"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/repositories"
	"gorm.io/gorm"
)

// RecipeRow is the recipes table
type RecipeRow struct {
	ID              uint                     `gorm:"primaryKey"`
	Position        int                      `gorm:"index;not null"`
	Name            string                   `gorm:"uniqueIndex;not null"`
	Ingredients     []models.IngredientEntry `gorm:"serializer:json"`
	PrepTime        int                      `gorm:"not null;default:0"`
	CookTime        int                      `gorm:"not null;default:0"`
	Directions      []models.Direction       `gorm:"serializer:json"`
	PendingQuantity int                      `gorm:"not null;default:0"`
}

func (RecipeRow) TableName() string { return "recipes" }

// InventoryRow is the inventory_items table
type InventoryRow struct {
	ID         uint   `gorm:"primaryKey"`
	Position   int    `gorm:"index;not null"`
	Food       string `gorm:"uniqueIndex;not null"`
	FoodType   string
	IsStocked  bool
	IsLow      bool
	NeedToBuy  bool `gorm:"index"`
	StockedNum int
	BuyNum     int
	InCart     bool
}

func (InventoryRow) TableName() string { return "inventory_items" }

// SQLiteModels lists the tables to migrate
func SQLiteModels() []interface{} {
	return []interface{}{&RecipeRow{}, &InventoryRow{}}
}

type sqliteRecipeRepository struct {
	db *gorm.DB
}

// NewSQLiteRecipeRepository creates the gorm recipe store
func NewSQLiteRecipeRepository(db *gorm.DB) repositories.RecipeRepository {
	return &sqliteRecipeRepository{db: db}
}

func (r *sqliteRecipeRepository) LoadAll(ctx context.Context) ([]*models.Recipe, error) {
	var rows []RecipeRow
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	recipes := make([]*models.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = &models.Recipe{
			Name:            row.Name,
			Ingredients:     row.Ingredients,
			PrepTime:        row.PrepTime,
			CookTime:        row.CookTime,
			Directions:      row.Directions,
			PendingQuantity: row.PendingQuantity,
		}
	}
	return recipes, nil
}

func (r *sqliteRecipeRepository) SaveAll(ctx context.Context, recipes []*models.Recipe) error {
	rows := make([]RecipeRow, len(recipes))
	for i, recipe := range recipes {
		rows[i] = RecipeRow{
			Position:        i,
			Name:            recipe.Name,
			Ingredients:     recipe.Ingredients,
			PrepTime:        recipe.PrepTime,
			CookTime:        recipe.CookTime,
			Directions:      recipe.Directions,
			PendingQuantity: recipe.PendingQuantity,
		}
	}
	return replaceTable(ctx, r.db, &RecipeRow{}, rows)
}

type sqliteInventoryRepository struct {
	db *gorm.DB
}

// NewSQLiteInventoryRepository creates the gorm grocery ledger store
func NewSQLiteInventoryRepository(db *gorm.DB) repositories.InventoryRepository {
	return &sqliteInventoryRepository{db: db}
}

func (r *sqliteInventoryRepository) LoadAll(ctx context.Context) ([]*models.InventoryItem, error) {
	var rows []InventoryRow
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	items := make([]*models.InventoryItem, len(rows))
	for i, row := range rows {
		items[i] = &models.InventoryItem{
			FoodName:   row.Food,
			FoodType:   row.FoodType,
			IsStocked:  row.IsStocked,
			IsLow:      row.IsLow,
			NeedToBuy:  row.NeedToBuy,
			StockedNum: row.StockedNum,
			BuyNum:     row.BuyNum,
			InCart:     row.InCart,
		}
	}
	return items, nil
}

func (r *sqliteInventoryRepository) SaveAll(ctx context.Context, items []*models.InventoryItem) error {
	rows := make([]InventoryRow, len(items))
	for i, item := range items {
		rows[i] = InventoryRow{
			Position:   i,
			Food:       item.FoodName,
			FoodType:   item.FoodType,
			IsStocked:  item.IsStocked,
			IsLow:      item.IsLow,
			NeedToBuy:  item.NeedToBuy,
			StockedNum: item.StockedNum,
			BuyNum:     item.BuyNum,
			InCart:     item.InCart,
		}
	}
	return replaceTable(ctx, r.db, &InventoryRow{}, rows)
}

// replaceTable deletes every row of model's table and inserts rows, in one transaction
func replaceTable[T any](ctx context.Context, db *gorm.DB, model *T, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}
		return nil
	})
}
