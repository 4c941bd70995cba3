package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/utils"
)

type CategoryController struct {
	db *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetAllCategories lists categories ordered by name.
func (ctl *CategoryController) GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := ctl.db.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load categories",
			Error:   err.Error(),
		})
	}
	return c.JSON(categories)
}

// GetCategory returns one category by ID.
func (ctl *CategoryController) GetCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category ID is required",
		})
	}

	var category models.Category
	if err := ctl.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load category",
			Error:   err.Error(),
		})
	}

	return c.JSON(category)
}

// CreateCategory stores a new category; the name is mandatory.
func (ctl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	req := new(CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category name is required",
		})
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := ctl.db.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create category",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory replaces the name and description of a category.
func (ctl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category ID is required",
		})
	}

	req := new(CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category name is required",
		})
	}

	var category models.Category
	if err := ctl.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load category",
			Error:   err.Error(),
		})
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := ctl.db.Save(&category).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update category",
			Error:   err.Error(),
		})
	}

	return c.JSON(category)
}

// DeleteCategory removes a category unless products still reference it.
func (ctl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category ID is required",
		})
	}

	var productCount int64
	err = ctl.db.Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&productCount).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check category products",
			Error:   err.Error(),
		})
	}
	if productCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "Category has associated products and cannot be deleted",
			"productCount": productCount,
		})
	}

	var category models.Category
	if err := ctl.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load category",
			Error:   err.Error(),
		})
	}

	if err := ctl.db.Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete category",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Category deleted successfully",
		"category": category,
	})
}
