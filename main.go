package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"leadforge/config"
	"leadforge/middleware"
	"leadforge/routes"
	"leadforge/store"
	"leadforge/utils"
	"leadforge/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting is optional; without a DSN the helpers only log
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              config.AppConfig.SentryDSN,
			TracesSampleRate: 0.1,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// In-memory application state
	st := store.New()

	// Content generation and delivery degrade to simulated implementations
	// when their credentials are absent
	generator := utils.NewContentGenerator(config.AppConfig, log.New(os.Stdout, "AI: ", log.LstdFlags))
	mailer := utils.NewMailer(config.AppConfig, log.New(os.Stdout, "MAIL: ", log.LstdFlags))

	// Initialize and start the simulation worker
	simWorker := worker.NewSimulationWorker(st, config.AppConfig.Simulation, log.New(os.Stdout, "SIM: ", log.LstdFlags))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go simWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, st, generator, mailer, simWorker)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
