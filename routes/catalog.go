package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallercr/workshop-api/controllers"
	"github.com/tallercr/workshop-api/middleware"
)

// SetupCatalogRoutes configures product and category routes
func SetupCatalogRoutes(app *fiber.App, products *controllers.ProductController, categories *controllers.CategoryController, jwtSecret string) {
	api := app.Group("/api")

	product := api.Group("/products")
	product.Get("/", products.GetAllProducts)
	product.Get("/:id", products.GetProduct)
	product.Post("/", middleware.Protected(jwtSecret), middleware.RequireAdmin(), products.CreateProduct)
	product.Put("/:id", middleware.Protected(jwtSecret), middleware.RequireAdmin(), products.UpdateProduct)
	product.Delete("/:id", middleware.Protected(jwtSecret), middleware.RequireAdmin(), products.DeleteProduct)

	category := api.Group("/categories")
	category.Get("/", categories.GetAllCategories)
	category.Get("/:id", categories.GetCategory)
	category.Post("/", middleware.Protected(jwtSecret), middleware.RequireAdmin(), categories.CreateCategory)
	category.Put("/:id", middleware.Protected(jwtSecret), middleware.RequireAdmin(), categories.UpdateCategory)
	category.Delete("/:id", middleware.Protected(jwtSecret), middleware.RequireAdmin(), categories.DeleteCategory)
}
