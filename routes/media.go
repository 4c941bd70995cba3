package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallercr/workshop-api/controllers"
	"github.com/tallercr/workshop-api/middleware"
)

// SetupMediaRoutes configures promotion, banner and upload routes
func SetupMediaRoutes(app *fiber.App, media *controllers.MediaController, jwtSecret string) {
	api := app.Group("/api")

	api.Get("/promotions", media.ListPromotions)
	api.Get("/banner-images", media.ListBannerImages)

	api.Post("/uploads", middleware.Protected(jwtSecret), middleware.RequireAdmin(), media.UploadImage)
	api.Delete("/uploads", middleware.Protected(jwtSecret), middleware.RequireAdmin(), media.DeleteImage)
}
