package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallercr/workshop-api/scheduling"
	"github.com/tallercr/workshop-api/store"
	"github.com/tallercr/workshop-api/utils"
)

type AvailabilityController struct {
	quotes store.QuoteStore
}

func NewAvailabilityController(quotes store.QuoteStore) *AvailabilityController {
	return &AvailabilityController{quotes: quotes}
}

// GetAvailability answers which slots remain bookable for a date,
// optionally restricted to one branch.
func (ctl *AvailabilityController) GetAvailability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date query parameter is required",
		})
	}

	bookings, err := ctl.quotes.SlotsByDate(c.Context(), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(scheduling.Compute(bookings, c.Query("branch")))
}
