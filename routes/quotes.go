package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallercr/workshop-api/controllers"
)

// SetupQuoteRoutes configures booking and availability routes
func SetupQuoteRoutes(app *fiber.App, quotes *controllers.QuoteController, availability *controllers.AvailabilityController) {
	api := app.Group("/api")

	api.Get("/availability", availability.GetAvailability)

	quote := api.Group("/quotes")
	quote.Get("/", quotes.GetQuotes)
	quote.Post("/", quotes.CreateQuote)
	quote.Get("/:id", quotes.GetQuote)
	quote.Patch("/:id", quotes.UpdateQuote)
}
