// Package main is the entry point for the card dashboard API.
// It loads configuration, wires the stores and services,
// and starts the HTTP server.
package main

import (
	"log"
	"time"

	"cardfolio/internal/config"
	"cardfolio/internal/repositories"
	"cardfolio/internal/routes"
	"cardfolio/internal/services/catalog"
	"cardfolio/internal/services/portfolio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	opts := repositories.StoreOptions{
		LockTimeout: cfg.LockTimeout,
		LockRetry:   cfg.LockRetry,
	}
	cardRepo := repositories.NewCreditCardRepository(cfg.DataFile, opts)
	tagRepo := repositories.NewTagRepository(cfg.TagsFile, opts)
	log.Printf("✅ Card store at %s (tags at %s, lock timeout %s)", cfg.DataFile, cfg.TagsFile, cfg.LockTimeout)

	metrics := portfolio.NewCountingMetricsCollector()
	cardService := portfolio.NewService(
		cardRepo,
		tagRepo,
		catalog.NewDirCatalog(cfg.ImageDir),
		portfolio.Config{
			ReapplyWindowDays: cfg.ReapplyWindowDays,
			Transactional:     cfg.Transactional,
		},
		metrics,
	)
	if cfg.Transactional {
		log.Println("✅ Transactional store mode enabled")
	}

	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE",
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Exports read the whole file; keep them from being hammered.
	app.Use("/api/export", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, cardService, metrics)

	log.Fatal(app.Listen(":" + cfg.Port))
}
