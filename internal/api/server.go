package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"beautyvault/internal/api/handlers"
	"beautyvault/internal/api/middleware"
	"beautyvault/internal/cart"
	"beautyvault/internal/catalog"
	"beautyvault/internal/checkout"
	"beautyvault/internal/config"
	"beautyvault/internal/database"
	"beautyvault/internal/events"
	"beautyvault/internal/exporter"
	"beautyvault/internal/logger"
	"beautyvault/internal/services/wix"
	"beautyvault/internal/sync"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, carts cart.Repository, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Wire the domain components
	store := catalog.NewStore(db.DB)
	wixClient := wix.NewClient(cfg.WixAPIKey, cfg.WixSiteID, cfg.WixAccountID, cfg.WixAppID, logger)
	outbound := sync.NewOutbound(store, wixClient, logger)
	inbound := sync.NewInbound(store, wixClient, cfg.SyncPageSize, logger)
	cartStore := cart.NewStore(carts, logger)
	orchestrator := checkout.New(cartStore, wixClient, cfg.CheckoutReturnURL, logger)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(store, logger)
	adminHandler := handlers.NewAdminHandler(store, exporter.New(logger), outbound, inbound, publisher, logger)
	cartHandler := handlers.NewCartHandler(cartStore, orchestrator, logger)

	// Health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "BeautyVault API is running",
			"status":  "healthy",
		})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.POST("/:id/unlink", productHandler.Unlink)
		}

		// Catalog administration
		admin := v1.Group("/admin")
		{
			admin.POST("/import", adminHandler.Import)
			admin.GET("/export", adminHandler.Export)
			admin.POST("/sync/outbound", adminHandler.SyncOutbound)
			admin.POST("/sync/inbound", adminHandler.SyncInbound)
			admin.POST("/sync-jobs/:direction", adminHandler.EnqueueSync)
		}

		// Carts and checkout
		carts := v1.Group("/carts")
		{
			carts.GET("/:id", cartHandler.Get)
			carts.POST("/:id/items", cartHandler.AddItem)
			carts.PUT("/:id/items/:productId", cartHandler.UpdateQuantity)
			carts.DELETE("/:id/items/:productId", cartHandler.RemoveItem)
			carts.DELETE("/:id", cartHandler.Clear)
			carts.POST("/:id/checkout", cartHandler.Checkout)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
