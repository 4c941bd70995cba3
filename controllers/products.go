package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/utils"
)

type ProductController struct {
	db *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{db: db}
}

type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       int      `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	ImagePath   string   `json:"image_path"`
}

func (req *ProductRequest) missingRequired() fiber.Map {
	if req.Name != "" && req.Price != nil {
		return nil
	}
	return fiber.Map{
		"name":  req.Name == "",
		"price": req.Price == nil,
	}
}

// GetAllProducts lists products ordered by name, optionally filtered by
// category, each carrying its category name.
func (ctl *ProductController) GetAllProducts(c *fiber.Ctx) error {
	query := ctl.db.Preload("Category").Order("name")

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load products",
			Error:   err.Error(),
		})
	}

	for i := range products {
		fillCategoryName(&products[i])
	}

	return c.JSON(products)
}

// GetProduct returns one product by ID.
func (ctl *ProductController) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product ID is required",
		})
	}

	var product models.Product
	if err := ctl.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load product",
			Error:   err.Error(),
		})
	}

	fillCategoryName(&product)
	return c.JSON(product)
}

// CreateProduct stores a new product. Name and price are mandatory.
func (ctl *ProductController) CreateProduct(c *fiber.Ctx) error {
	req := new(ProductRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if missing := req.missingRequired(); missing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Missing required fields",
			"missing": missing,
		})
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		ImagePath:   req.ImagePath,
	}

	if err := ctl.db.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create product",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct replaces the editable fields of a product.
func (ctl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product ID is required",
		})
	}

	req := new(ProductRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if missing := req.missingRequired(); missing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Missing required fields",
			"missing": missing,
		})
	}

	var product models.Product
	if err := ctl.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load product",
			Error:   err.Error(),
		})
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = *req.Price
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.ImageURL = req.ImageURL
	product.ImagePath = req.ImagePath

	if err := ctl.db.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update product",
			Error:   err.Error(),
		})
	}

	return c.JSON(product)
}

// DeleteProduct removes a product and returns the deleted row.
func (ctl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product ID is required",
		})
	}

	var product models.Product
	if err := ctl.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load product",
			Error:   err.Error(),
		})
	}

	if err := ctl.db.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete product",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}

func fillCategoryName(product *models.Product) {
	if product.Category != nil {
		product.CategoryName = product.Category.Name
	}
}
