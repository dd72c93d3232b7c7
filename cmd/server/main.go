package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wdmapp/delivery-map-backend/config"
	"github.com/wdmapp/delivery-map-backend/internal/app/controller"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/internal/app/service"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
	"github.com/wdmapp/delivery-map-backend/internal/router"
	"github.com/wdmapp/delivery-map-backend/internal/scheduler"
	"github.com/wdmapp/delivery-map-backend/internal/storage"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
	"github.com/wdmapp/delivery-map-backend/pkg/redis"
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

	logger.Info("Starting Delivery Map Backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
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

	// Initialize Redis for the public read cache (optional)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, public reads will hit the database", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(db.GetDB())
	pinRepo := repository.NewPinRepository(db.GetDB())

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	pinService := service.NewPinService(pinRepo)

	// Initialize S3 storage for tile image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	storefrontController := controller.NewStorefrontController(settingsService, pinService, cfg.Cache.PublicTTL)
	adminController := controller.NewAdminController(settingsService, pinService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the pin purge scheduler
	purgeScheduler := scheduler.NewPinPurgeScheduler(pinRepo)
	if err := purgeScheduler.Start(); err != nil {
		logger.Warn("Failed to start pin purge scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer purgeScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		storefrontController,
		adminController,
		uploadController,
		authMiddleware,
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
