// Package routes defines the API routing configuration.
// It maps every dashboard endpoint to its handler.
package routes

import (
	"cardfolio/internal/handlers"
	"cardfolio/internal/services/portfolio"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, cardService portfolio.Service, metrics *portfolio.CountingMetricsCollector) {
	cardHandler := handlers.NewCreditCardHandler(cardService)
	tagHandler := handlers.NewTagHandler(cardService)

	app.Get("/health", handlers.HealthCheck(metrics))

	api := app.Group("/api")
	api.Get("/dashboard", cardHandler.Dashboard)
	api.Get("/catalog", cardHandler.GetCatalog)

	export := api.Group("/export")
	export.Get("/csv", cardHandler.ExportCSV)
	export.Get("/xlsx", cardHandler.ExportXLSX)

	// Card routes; /order must be registered before /:id
	cards := api.Group("/cards")
	cards.Get("/", cardHandler.GetCards)
	cards.Post("/", cardHandler.CreateCard)
	cards.Put("/order", cardHandler.Reorder)
	cards.Get("/:id", cardHandler.GetCard)
	cards.Put("/:id", cardHandler.UpdateCard)
	cards.Delete("/:id", cardHandler.DeleteCard)
	cards.Post("/:id/cancel", cardHandler.CancelCard)
	cards.Post("/:id/reactivate", cardHandler.ReactivateCard)
	cards.Post("/:id/fee", cardHandler.RecordFee)
	cards.Post("/:id/spend", cardHandler.UpdateSpend)

	// Tag routes
	tags := api.Group("/tags")
	tags.Get("/", tagHandler.GetTags)
	tags.Post("/", tagHandler.CreateTags)
	tags.Delete("/", tagHandler.DeleteTags)
}
