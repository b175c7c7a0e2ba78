package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/paikari/paikariworld-backend/config"
	"github.com/paikari/paikariworld-backend/internal/app/cart"
	"github.com/paikari/paikariworld-backend/internal/app/controller"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/internal/app/service"
	"github.com/paikari/paikariworld-backend/internal/db"
	"github.com/paikari/paikariworld-backend/internal/router"
	"github.com/paikari/paikariworld-backend/internal/scheduler"
	"github.com/paikari/paikariworld-backend/internal/websocket"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"github.com/paikari/paikariworld-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Paikari World Backend Server", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"log_level":    logLevel,
		"cart_backend": cfg.Cart.Backend,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Pick the cart persistence backend
	var factory cart.PersisterFactory
	switch cfg.Cart.Backend {
	case "redis":
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		factory = cart.RedisPersisterFactory(redis.GetClient(), cfg.Cart.StoreName, cfg.Cart.GuestTTL)
	default:
		factory = cart.FilePersisterFactory(cfg.Cart.StorageDir, cfg.Cart.StoreName)
	}

	manager := cart.NewManager(factory, cfg.Cart.TabletBreakpoint)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	variationRepo := repository.NewVariationRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, variationRepo)
	checkoutService := service.NewCheckoutService(orderRepo, db.GetDB())

	// Cart snapshot hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize controllers
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(manager, catalogService, hub)
	checkoutController := controller.NewCheckoutController(checkoutService, manager, hub, cfg.Guest)

	// Start the cart pruner
	pruner := scheduler.NewCartPruner(manager, cfg.Cart)
	if err := pruner.Start(); err != nil {
		logger.Warn("Cart pruner not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer pruner.Stop()

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
