package controllers

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tallercr/workshop-api/cache"
	"github.com/tallercr/workshop-api/storage"
)

const (
	promotionsFolder = "promotions"
	bannersFolder    = "banner-images"
	productsFolder   = "products"

	maxUploadBytes = 5 * 1024 * 1024

	promotionsCacheKey = "media:promotions"
	bannersCacheKey    = "media:banner-images"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// MediaStorage is the slice of the storage client the handlers need;
// satisfied by storage.Client.
type MediaStorage interface {
	Upload(ctx context.Context, file interface{}, publicID string) (storage.UploadResult, error)
	Delete(ctx context.Context, path string) error
	ListFolder(ctx context.Context, folder string) ([]storage.Object, error)
}

type MediaController struct {
	storage MediaStorage
	cache   *cache.Cache
	log     *zap.Logger
}

func NewMediaController(st MediaStorage, ca *cache.Cache, log *zap.Logger) *MediaController {
	return &MediaController{storage: st, cache: ca, log: log}
}

// ListPromotions returns the promotion images, name-sorted.
func (ctl *MediaController) ListPromotions(c *fiber.Ctx) error {
	objects, err := ctl.listCached(c.Context(), promotionsCacheKey, promotionsFolder)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load promotion images",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"promotions": objects,
	})
}

// ListBannerImages returns the banner images, name-sorted.
func (ctl *MediaController) ListBannerImages(c *fiber.Ctx) error {
	objects, err := ctl.listCached(c.Context(), bannersCacheKey, bannersFolder)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load banner images",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"bannerImages": objects,
	})
}

// UploadImage stores a product image and returns its public URL and path.
func (ctl *MediaController) UploadImage(c *fiber.Ctx) error {
	header, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No file was provided",
		})
	}

	if header.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "File exceeds the 5MB limit",
		})
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[strings.ToLower(contentType)] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "File type not allowed. Only images are accepted.",
		})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	publicID := productsFolder + "/" + uuid.NewString()
	if ext != "" {
		publicID += "-" + strings.ToLower(ext)
	}

	result, err := ctl.storage.Upload(c.Context(), file, publicID)
	if err != nil {
		ctl.log.Error("image upload failed", zap.String("public_id", publicID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload image: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image uploaded successfully",
		"url":     result.URL,
		"path":    result.Path,
	})
}

// DeleteImage removes a stored image by its path.
func (ctl *MediaController) DeleteImage(c *fiber.Ctx) error {
	type deleteRequest struct {
		ImagePath string `json:"imagePath"`
	}

	req := new(deleteRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}
	if req.ImagePath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No image path was provided",
		})
	}

	if err := ctl.storage.Delete(c.Context(), req.ImagePath); err != nil {
		ctl.log.Error("image delete failed", zap.String("path", req.ImagePath), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete image: " + err.Error(),
		})
	}

	// A deleted asset may have been part of a cached listing.
	if ctl.cache != nil {
		if err := ctl.cache.Invalidate(c.Context(), promotionsCacheKey, bannersCacheKey); err != nil {
			ctl.log.Warn("failed to invalidate media cache", zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func (ctl *MediaController) listCached(ctx context.Context, key, folder string) ([]storage.Object, error) {
	if ctl.cache != nil {
		var cached []storage.Object
		err := ctl.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			ctl.log.Warn("media cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	objects, err := ctl.storage.ListFolder(ctx, folder)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []storage.Object{}
	}

	if ctl.cache != nil {
		if err := ctl.cache.SetJSON(ctx, key, objects); err != nil {
			ctl.log.Warn("media cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return objects, nil
}
