package app

import (
	"context"
	"net/http"

	"github.com/ak/larder/internal/app/middleware"
	"github.com/ak/larder/internal/domain/repositories"
	"github.com/ak/larder/internal/domain/services"
	"github.com/ak/larder/internal/infrastructure/config"
	"github.com/ak/larder/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and services
type Application struct {
	config  *config.Config
	logger  *logger.Logger
	store   repositories.HealthChecker
	kitchen services.KitchenService
	router  *gin.Engine
}

// New creates the HTTP application over a loaded kitchen session. store is
// probed by /ready.
func New(cfg *config.Config, log *logger.Logger, store repositories.HealthChecker, kitchen services.KitchenService) *Application {
	app := &Application{
		config:  cfg,
		logger:  log.WithComponent("http"),
		store:   store,
		kitchen: kitchen,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app.router = gin.New()

	app.router.Use(middleware.RequestID())
	app.router.Use(middleware.RecoveryMiddleware(app.logger.Logger))
	app.router.Use(middleware.LoggerMiddleware(app.logger.Logger))
	app.router.Use(middleware.CORS(cfg.CORS))

	app.setupRoutes()

	return app
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

func (a *Application) setupRoutes() {
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	v1 := a.router.Group("/api/v1")
	{
		v1.GET("/info", a.apiInfo)

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", a.listRecipes)
			recipes.POST("", a.createRecipe)
			recipes.GET("/makeable", a.listMakeable)
			recipes.GET("/:name", a.getRecipe)
			recipes.GET("/:name/availability", a.getAvailability)
			recipes.PUT("/:name/pending", a.setPending)
			recipes.DELETE("/:name/pending", a.clearPending)
		}

		groceries := v1.Group("/groceries")
		{
			groceries.GET("", a.shoppingList)
			groceries.POST("/commit", a.commitGroceries)
			groceries.POST("/release", a.releaseGroceries)
		}

		v1.GET("/inventory", a.listInventory)
		v1.GET("/inventory/:food", a.getInventoryItem)
	}
}

func (a *Application) ready(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Health(ctx)
}
