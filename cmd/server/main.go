package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/router"
	"github.com/connectsphere/backend/internal/store"
	"github.com/connectsphere/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Open the record store
	st, err := store.Open(context.Background(), store.Options{
		Driver:      cfg.StoreDriver,
		FilePath:    cfg.DatabasePath,
		PostgresURL: cfg.PostgresURL,
		MongoURI:    cfg.MongoURI,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer st.Close(context.Background())

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, st, logger)

	// Start server
	logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
