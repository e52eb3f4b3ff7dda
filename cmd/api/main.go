package main

import (
	"log"
	"strings"

	"beautyvault/internal/api"
	"beautyvault/internal/cart"
	"beautyvault/internal/config"
	"beautyvault/internal/database"
	"beautyvault/internal/events"
	"beautyvault/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Cart persistence rides on the same database. SQLite development setups
	// fall back to the in-memory repository.
	var carts cart.Repository
	if strings.HasPrefix(cfg.DatabaseURL, "sqlite://") {
		carts = cart.NewMemoryRepository()
	} else {
		repo, err := cart.OpenSQLRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect cart storage: %v", err)
		}
		carts = repo
	}

	// Event publisher for sync jobs
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	defer publisher.Close()

	// Initialize API server
	server := api.New(cfg, logger, db, carts, publisher)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
