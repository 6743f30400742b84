package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"finance-assistant/internal/models"
	"finance-assistant/internal/repository"
	"finance-assistant/pkg/config"
	"finance-assistant/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load sample expenses into the configured store",
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringP("user", "u", "", "User to seed (default: DEFAULT_USER_ID)")
	cmd.Flags().StringP("file", "f", "", "JSON file with an array of expenses (default: built-in sample set)")
	cmd.Flags().BoolP("reset", "r", false, "Delete the existing expenses of every seeded user first")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	file, _ := cmd.Flags().GetString("file")
	reset, _ := cmd.Flags().GetBool("reset")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if userID == "" {
		userID = cfg.Assistant.DefaultUserID
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := repository.NewExpenseStore(ctx, &cfg.Store, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize expense store", zap.Error(err))
		return err
	}
	defer closeStore()

	var expenses []*models.Expense
	if file != "" {
		expenses, err = loadExpenses(file, userID)
		if err != nil {
			return err
		}
	} else {
		expenses = sampleExpenses(userID, time.Now())
	}

	appLogger.Info("Starting expense seeding...",
		zap.String("user_id", userID),
		zap.Int("count", len(expenses)),
		zap.Bool("reset", reset),
	)

	inserted, deleted, err := seed(ctx, store, userID, expenses, reset)
	if err != nil {
		appLogger.Error("Seeding failed", zap.Int("inserted", inserted), zap.Error(err))
		return err
	}

	appLogger.Info("Expense seeding completed successfully!",
		zap.Int("inserted", inserted),
		zap.Int64("deleted", deleted),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d expenses for %s\n", inserted, userID)
	return nil
}
