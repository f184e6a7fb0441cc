package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/analyzer"
	"github.com/esgfactsheet/factsheet-ai/internal/config"
	"github.com/esgfactsheet/factsheet-ai/internal/db"
	"github.com/esgfactsheet/factsheet-ai/internal/repository"
	"github.com/esgfactsheet/factsheet-ai/internal/router"
	"github.com/esgfactsheet/factsheet-ai/internal/services"
	"github.com/esgfactsheet/factsheet-ai/internal/storage"
	"github.com/esgfactsheet/factsheet-ai/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize blob storage
	blobStore, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", "error", err)
	}

	// Initialize pipeline service
	fileRepo := repository.NewFileRepository(database)
	suggestionRepo := repository.NewSuggestionRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	jobRepo := repository.NewJobRepository(database)

	gemini := analyzer.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, logger)

	pipeline := services.NewPipelineService(
		fileRepo,
		suggestionRepo,
		reviewRepo,
		jobRepo,
		blobStore,
		gemini,
		logger,
		time.Duration(cfg.SignedURLTTLSeconds)*time.Second,
	)

	// Setup HTTP router
	handler := router.NewRouter(pipeline, logger, cfg.CORSOrigin)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
