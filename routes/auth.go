package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallercr/workshop-api/controllers"
	"github.com/tallercr/workshop-api/middleware"
)

// SetupAuthRoutes configures authentication and user management routes
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController, users *controllers.UserController, admins *controllers.AdminController, jwtSecret string) {
	api := app.Group("/api")

	// Public routes
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)
	api.Post("/refresh", auth.RefreshToken)

	// Protected routes
	api.Get("/me", middleware.Protected(jwtSecret), auth.Me)
	api.Get("/admins", middleware.Protected(jwtSecret), middleware.RequireAdmin(), admins.ListAdmins)
	api.Put("/users/:id", middleware.Protected(jwtSecret), users.UpdateUser)
	api.Patch("/users/:id", middleware.Protected(jwtSecret), users.UpdateUser)
}
