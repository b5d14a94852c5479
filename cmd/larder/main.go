package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ak/larder/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version   = "0.1.0"
	buildTime = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "larder",
		Short: "Larder - recipes, pantry inventory and grocery list",
		Long: `Larder keeps a recipe catalog and a pantry inventory side by side.
It ranks recipes by how many ingredients are missing, queues batches of
recipes, and turns the queued batches into a consolidated grocery list.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "record store driver (csv, sqlite, mongodb, memory)")
	flags.String("recipes-file", "", "recipes CSV file for the csv driver")
	flags.String("groceries-file", "", "groceries CSV file for the csv driver")
	_ = viper.BindPFlag("store.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("store.recipes_file", flags.Lookup("recipes-file"))
	_ = viper.BindPFlag("store.groceries_file", flags.Lookup("groceries-file"))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "larder version %s (built %s)\n", version, buildTime)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	})

	addKitchenCommands(rootCmd)

	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, log := s.cfg, s.log
	log.Info("Starting larder",
		zap.String("version", version),
		zap.String("environment", cfg.App.Env),
		zap.String("store", cfg.Store.Driver),
	)

	application := app.New(cfg, log, s.provider, s.kitchen)

	server := &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      application.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("address", cfg.GetAddress()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// pending quantities set over HTTP live in memory until here
	if err := s.kitchen.Save(shutdownCtx); err != nil {
		log.Error("Failed to save kitchen on shutdown", zap.Error(err))
	}

	log.Info("Server shutdown complete")
	return nil
}
