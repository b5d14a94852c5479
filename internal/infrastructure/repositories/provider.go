package repositories

import (
	"context"
	"fmt"

	"github.com/ak/larder/internal/domain/repositories"
	"github.com/ak/larder/internal/infrastructure/config"
	"github.com/ak/larder/internal/infrastructure/database"
	"github.com/ak/larder/internal/pkg/logger"
	"go.uber.org/zap"
)

// Provider holds the repositories of the configured record store
type Provider struct {
	Recipe    repositories.RecipeRepository
	Inventory repositories.InventoryRepository

	health func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// NewProvider opens the store selected by cfg.Store.Driver
func NewProvider(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Provider, error) {
	log = log.WithComponent("store")

	var (
		p   *Provider
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverMongoDB:
		p, err = newMongoProvider(ctx, cfg.MongoDB, log)
	case config.DriverSQLite:
		p, err = newSQLiteProvider(cfg.SQLite, log)
	case config.DriverCSV:
		p = NewCSVProvider(cfg.Store.RecipesFile, cfg.Store.GroceriesFile)
	case config.DriverMemory:
		p = NewMemoryProvider(NewMemoryRecipeRepository(), NewMemoryInventoryRepository())
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Record store ready", zap.String("driver", cfg.Store.Driver))
	return p, nil
}

// NewCSVProvider stores recipes and groceries in two CSV files
func NewCSVProvider(recipesFile, groceriesFile string) *Provider {
	return &Provider{
		Recipe:    NewCSVRecipeRepository(recipesFile),
		Inventory: NewCSVInventoryRepository(groceriesFile),
		health: func(context.Context) error {
			return csvHealth(recipesFile, groceriesFile)
		},
	}
}

// NewMemoryProvider wraps in-process repositories
func NewMemoryProvider(recipes *MemoryRecipeRepository, inventory *MemoryInventoryRepository) *Provider {
	return &Provider{Recipe: recipes, Inventory: inventory}
}

func newMongoProvider(ctx context.Context, cfg config.MongoDBConfig, log *logger.Logger) (*Provider, error) {
	db := database.NewMongoDB(cfg, log)
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return &Provider{
		Recipe:    NewRecipeRepository(db),
		Inventory: NewInventoryRepository(db),
		health:    db.Health,
		close:     db.Close,
	}, nil
}

func newSQLiteProvider(cfg config.SQLiteConfig, log *logger.Logger) (*Provider, error) {
	db, err := database.OpenSQLite(cfg, log, SQLiteModels()...)
	if err != nil {
		return nil, err
	}
	return &Provider{
		Recipe:    NewSQLiteRecipeRepository(db.DB()),
		Inventory: NewSQLiteInventoryRepository(db.DB()),
		health:    db.Health,
		close:     func(context.Context) error { return db.Close() },
	}, nil
}

// Health reports whether the store is reachable
func (p *Provider) Health(ctx context.Context) error {
	if p.health == nil {
		return nil
	}
	return p.health(ctx)
}

// Close releases store connections
func (p *Provider) Close(ctx context.Context) error {
	if p.close == nil {
		return nil
	}
	return p.close(ctx)
}
