package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/utils"
)

type AdminController struct {
	db *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// ListAdmins returns every user holding the admin role, reshaped for the
// admin panel.
func (ctl *AdminController) ListAdmins(c *fiber.Ctx) error {
	var users []models.User
	err := ctl.db.
		Where("role = ?", models.RoleAdmin).
		Order("created_at asc").
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load administrators",
			Error:   err.Error(),
		})
	}

	admins := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		admins = append(admins, fiber.Map{
			"id":        user.ID,
			"name":      user.FullName,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"region":    user.Region,
			"city":      user.City,
			"district":  user.District,
			"createdAt": user.CreatedAt,
			"active":    true,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    admins,
	})
}
