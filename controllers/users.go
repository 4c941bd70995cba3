package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Region   *string `json:"region"`
	City     *string `json:"city"`
	District *string `json:"district"`
}

// UpdateUser applies a partial profile update. A changed email must not
// belong to another account.
func (ctl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}

	req := new(UpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := ctl.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load user",
			Error:   err.Error(),
		})
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		var other models.User
		taken := ctl.db.
			Where("email = ? AND id <> ?", *req.Email, user.ID).
			First(&other).RowsAffected > 0
		if taken {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is already in use",
			})
		}
		user.Email = *req.Email
	}
	if req.FullName != nil && *req.FullName != "" {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Region != nil {
		user.Region = *req.Region
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.District != nil {
		user.District = *req.District
	}

	if err := ctl.db.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    publicUser(user),
	})
}
