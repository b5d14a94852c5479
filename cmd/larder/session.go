package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/larder/internal/domain/services"
	"github.com/ak/larder/internal/infrastructure/config"
	"github.com/ak/larder/internal/infrastructure/repositories"
	"github.com/ak/larder/internal/pkg/logger"
	"go.uber.org/zap"
)

// session is one load-act-save cycle against the configured record store
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	provider *repositories.Provider
	kitchen  services.KitchenService
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	provider, err := repositories.NewProvider(storeCtx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	kitchen := services.NewKitchenService(
		provider.Recipe,
		provider.Inventory,
		services.NewReconciler(cfg.Groceries.DefaultFoodType, log),
		log,
	)
	if err := kitchen.Load(storeCtx); err != nil {
		_ = provider.Close(ctx)
		return nil, err
	}

	return &session{cfg: cfg, log: log, provider: provider, kitchen: kitchen}, nil
}

// Save persists both collections within the store timeout
func (s *session) Save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Store.Timeout)
	defer cancel()
	return s.kitchen.Save(ctx)
}

func (s *session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.provider.Close(ctx); err != nil {
		s.log.Error("Failed to close record store", zap.Error(err))
	}
	_ = s.log.Sync()
}
