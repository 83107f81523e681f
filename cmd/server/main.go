package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/api"
	"github.com/ycwang-tw/matcha-trip-weather/internal/cache"
	"github.com/ycwang-tw/matcha-trip-weather/internal/config"
	"github.com/ycwang-tw/matcha-trip-weather/internal/forecast"
	"github.com/ycwang-tw/matcha-trip-weather/internal/scheduler"
	"github.com/ycwang-tw/matcha-trip-weather/pkg/client"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting trip weather service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.CWA.APIKey == "" {
		logger.Warn("CWA_API_KEY is not set; upstream requests will be rejected")
	}

	// Open the persistent cache store, falling back to memory
	var kv cache.KV
	if cfg.Cache.Path != "" {
		sqliteKV, err := cache.OpenSQLite(cfg.Cache.Path)
		if err != nil {
			logger.Warn("Failed to open cache database, using in-memory cache", zap.Error(err))
			kv = cache.NewMemoryKV()
		} else {
			defer sqliteKV.Close()
			kv = sqliteKV
		}
	} else {
		kv = cache.NewMemoryKV()
	}
	forecastCache := cache.New(kv, cfg.Cache.TTL, logger)

	// CWA client
	cwaClient := client.NewCWAClient(cfg.CWA.BaseURL, cfg.CWA.APIKey, client.ClientConfig{
		Timeout:        10 * time.Second,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)

	// Forecast service
	service := forecast.NewService(cwaClient, forecastCache, cfg, logger)

	// Cache warm-up scheduler
	refreshScheduler := scheduler.NewScheduler(service, cfg.Scheduler.RefreshInterval, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(service, logger)
	api.SetupRoutes(app, handler, logger)

	// Start scheduler
	if err := refreshScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler
	refreshScheduler.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
