package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"beautyvault/internal/catalog"
	"beautyvault/internal/config"
	"beautyvault/internal/database"
	"beautyvault/internal/logger"
	"beautyvault/internal/services/wix"
	"beautyvault/internal/sync"
	"beautyvault/internal/worker"
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
	defer db.Close()

	store := catalog.NewStore(db.DB)
	wixClient := wix.NewClient(cfg.WixAPIKey, cfg.WixSiteID, cfg.WixAccountID, cfg.WixAppID, logger)
	outbound := sync.NewOutbound(store, wixClient, logger)
	inbound := sync.NewInbound(store, wixClient, cfg.SyncPageSize, logger)

	// Initialize worker
	w := worker.New(cfg, logger, outbound, inbound)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		w.Stop()
		os.Exit(0)
	}()

	// Start worker
	w.Start()
}
