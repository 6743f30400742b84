package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-assistant/internal/api"
	"finance-assistant/internal/api/handlers"
	"finance-assistant/internal/dto"
	"finance-assistant/internal/llm"
	"finance-assistant/internal/repository"
	"finance-assistant/internal/service"
	"finance-assistant/pkg/config"
	"finance-assistant/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Finance Assistant API
// @version 1.0
// @description Personal finance assistant: records expenses and answers questions about them with an LLM

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Finance Assistant service",
		zap.String("store", cfg.Store.Driver),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	// Initialize expense store
	ctx := context.Background()
	store, closeStore, err := repository.NewExpenseStore(ctx, &cfg.Store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize expense store", zap.Error(err))
	}
	defer closeStore()

	// Initialize LLM client
	completer, closeLLM, err := llm.New(&cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}
	defer closeLLM()

	// Initialize services
	opts := service.Options{
		Model:          cfg.LLM.Model,
		CurrencySymbol: cfg.Assistant.CurrencySymbol,
	}
	expenseService := service.NewExpenseService(store, nil, appLogger)
	extractor := service.NewExpenseExtractor(store, completer, opts, appLogger)
	assistant := service.NewAssistantService(store, completer, opts, appLogger)
	queryService := service.NewQueryService(extractor, assistant, appLogger)

	// Initialize handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService, cfg.Assistant.DefaultUserID, appLogger)
	queryHandler := handlers.NewQueryHandler(queryService, dto.InfoResponse{
		Message:    "Finance Assistant API is running",
		AIProvider: llm.DisplayName(cfg.LLM.Provider),
		Model:      cfg.LLM.Model,
	}, appLogger)

	// Setup router
	app := api.SetupRouter(expenseHandler, queryHandler, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
