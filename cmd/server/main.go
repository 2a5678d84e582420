package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/http/routes"
	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/config"

	"github.com/gofiber/fiber/v2"
)

// @title GymDesk API
// @version 1.0
// @description Gym membership and attendance management API

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the embedded store
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer config.CloseDatabase()

	// Migrate (forward-only, refuses stores written by a newer build)
	if err := models.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate store: %v", err)
	}
	log.Println("✅ Store migration completed")

	// Seed defaults (pricing settings, initial admin account)
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️  Warning: Failed to seed defaults: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GymDesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	reconcileService := routes.Setup(app, db, cfg)

	// Start the daily status sweep (08:30 local time)
	if err := reconcileService.Start(); err != nil {
		log.Fatalf("❌ Failed to start status sweep: %v", err)
	}
	defer reconcileService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
