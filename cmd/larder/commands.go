package main

import (
	"context"
	"fmt"

	"github.com/ak/larder/internal/domain/services"
	"github.com/ak/larder/internal/infrastructure/repositories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withSession runs fn against a freshly loaded kitchen and saves afterwards
// when save is set
func withSession(cmd *cobra.Command, save bool, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := fn(ctx, s); err != nil {
		return err
	}
	if save {
		return s.Save(ctx)
	}
	return nil
}

func addKitchenCommands(rootCmd *cobra.Command) {
	recipesCmd := &cobra.Command{
		Use:   "recipes",
		Short: "List recipes with their availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortBy, _ := cmd.Flags().GetString("sort")
			by, err := services.ParseSortCriteria(sortBy)
			if err != nil {
				return err
			}
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				renderRecipeList(cmd.OutOrStdout(), s.kitchen.ListView(by))
				return nil
			})
		},
	}
	recipesCmd.Flags().String("sort", "makable", "ordering: makable, name or total_time")

	makeableCmd := &cobra.Command{
		Use:   "makeable",
		Short: "List recipes that can be made from stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				renderNames(cmd.OutOrStdout(), s.kitchen.FindMakeable())
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe's ingredients and directions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				detail, err := s.kitchen.DetailView(args[0])
				if err != nil {
					return err
				}
				renderRecipeDetail(cmd.OutOrStdout(), detail)
				return nil
			})
		},
	}

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Set or clear the batches queued for a recipe",
	}
	pendingCmd.AddCommand(&cobra.Command{
		Use:   "set <recipe> <quantity>",
		Short: "Queue quantity batches of a recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, s *session) error {
				if err := s.kitchen.SetPendingQuantityText(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: pending %s\n", args[0], args[1])
				return nil
			})
		},
	})
	pendingCmd.AddCommand(&cobra.Command{
		Use:   "clear <recipe>",
		Short: "Reset a recipe's pending quantity to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, s *session) error {
				if err := s.kitchen.ClearPending(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: pending cleared\n", args[0])
				return nil
			})
		},
	})

	commitCmd := &cobra.Command{
		Use:   "commit",
		Short: "Add every pending recipe's ingredients to the grocery list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Commit persists on its own
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				result, err := s.kitchen.Commit(ctx)
				if err != nil {
					return err
				}
				renderCommit(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	groceriesCmd := &cobra.Command{
		Use:   "groceries",
		Short: "Show the grocery list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				renderShoppingList(cmd.OutOrStdout(), s.kitchen.ShoppingList())
				return nil
			})
		},
	}
	releaseCmd := &cobra.Command{
		Use:   "release <recipe>",
		Short: "Take batches of a recipe back off the grocery list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, _ := cmd.Flags().GetInt("batches")
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				updates, err := s.kitchen.Release(ctx, args[0], batches)
				if err != nil {
					return err
				}
				renderUpdates(cmd.OutOrStdout(), updates)
				return nil
			})
		},
	}
	releaseCmd.Flags().Int("batches", 1, "number of batches to release")
	groceriesCmd.AddCommand(releaseCmd)

	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show the whole inventory ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				renderInventory(cmd.OutOrStdout(), s.kitchen.InventoryItems())
				return nil
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the configured store's contents with a CSV snapshot",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}
	importCmd.Flags().String("recipes", "recipes.csv", "recipes CSV to import")
	importCmd.Flags().String("groceries", "groceries.csv", "groceries CSV to import")

	rootCmd.AddCommand(recipesCmd, makeableCmd, showCmd, pendingCmd, commitCmd, groceriesCmd, inventoryCmd, importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	recipesFile, _ := cmd.Flags().GetString("recipes")
	groceriesFile, _ := cmd.Flags().GetString("groceries")

	return withSession(cmd, false, func(ctx context.Context, s *session) error {
		source := repositories.NewCSVProvider(recipesFile, groceriesFile)
		recipes, err := source.Recipe.LoadAll(ctx)
		if err != nil {
			return err
		}
		items, err := source.Inventory.LoadAll(ctx)
		if err != nil {
			return err
		}

		if err := s.kitchen.Replace(ctx, recipes, items); err != nil {
			return err
		}

		s.log.Info("Imported CSV snapshot",
			zap.String("driver", s.cfg.Store.Driver),
			zap.Int("recipes", len(recipes)),
			zap.Int("inventory_items", len(items)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d recipes and %d inventory items into %s store\n",
			len(recipes), len(items), s.cfg.Store.Driver)
		return nil
	})
}
