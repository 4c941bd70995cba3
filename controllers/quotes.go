package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/scheduling"
	"github.com/tallercr/workshop-api/store"
	"github.com/tallercr/workshop-api/utils"
)

// Sender delivers notification mail; satisfied by utils.Mailer.
type Sender interface {
	SendEmail(to, subject, body string) error
}

type QuoteController struct {
	quotes store.QuoteStore
	mailer Sender
	log    *zap.Logger
}

func NewQuoteController(quotes store.QuoteStore, mailer Sender, log *zap.Logger) *QuoteController {
	return &QuoteController{quotes: quotes, mailer: mailer, log: log}
}

type CreateQuoteRequest struct {
	ClientName     string `json:"clientName"`
	ClientEmail    string `json:"clientEmail"`
	ClientPhone    string `json:"clientPhone"`
	ClientRegion   string `json:"clientRegion"`
	ClientCity     string `json:"clientCity"`
	ClientDistrict string `json:"clientDistrict"`
	Branch         string `json:"branch"`
	ServiceType    string `json:"serviceType"`
	Date           string `json:"date"`
	TimeSlot       string `json:"timeSlot"`
	PlateType      string `json:"plateType"`
	PlateNumber    string `json:"plateNumber"`
	VehicleMake    string `json:"vehicleMake"`
	VehicleModel   string `json:"vehicleModel"`
	Issue          string `json:"issue"`
}

// CreateQuote books an appointment. The capacity check and insert run in
// one transaction, so an over-booked slot is refused instead of silently
// exceeding the limit.
func (ctl *QuoteController) CreateQuote(c *fiber.Ctx) error {
	req := new(CreateQuoteRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if req.ClientName == "" || req.ClientEmail == "" || req.ClientPhone == "" || req.Branch == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
			"missing": fiber.Map{
				"clientName":  req.ClientName == "",
				"clientEmail": req.ClientEmail == "",
				"clientPhone": req.ClientPhone == "",
				"branch":      req.Branch == "",
			},
		})
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "date must use the YYYY-MM-DD format",
			})
		}
	}
	if req.TimeSlot != "" && !scheduling.IsValidSlot(req.TimeSlot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "timeSlot is not a bookable hour",
		})
	}

	quote := &models.Quote{
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		ClientRegion:   req.ClientRegion,
		ClientCity:     req.ClientCity,
		ClientDistrict: req.ClientDistrict,
		Branch:         req.Branch,
		ServiceType:    req.ServiceType,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		PlateType:      req.PlateType,
		PlateNumber:    req.PlateNumber,
		VehicleMake:    req.VehicleMake,
		VehicleModel:   req.VehicleModel,
		Issue:          req.Issue,
	}

	if err := ctl.quotes.Create(c.Context(), quote); err != nil {
		if errors.Is(err, store.ErrSlotFull) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "The selected time slot is fully booked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create quote",
			Error:   err.Error(),
		})
	}

	go ctl.sendConfirmation(*quote)
	go ctl.purgeExpired()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"quote": quote})
}

// GetQuotes lists the quotes for one date, defaulting to today.
func (ctl *QuoteController) GetQuotes(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	quotes, err := ctl.quotes.ListByDate(c.Context(), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load quotes",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"quotes": quotes})
}

// GetQuote returns one quote by ID.
func (ctl *QuoteController) GetQuote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quote ID is required",
		})
	}

	quote, err := ctl.quotes.GetByID(c.Context(), uint(id))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load quote",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"quote": quote})
}

type UpdateQuoteRequest struct {
	Status        string `json:"status"`
	Technician    string `json:"technician"`
	Observations  string `json:"observations"`
	ChecklistData string `json:"checklist_data"`
}

// UpdateQuote applies a partial update; only supplied fields change.
func (ctl *QuoteController) UpdateQuote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quote ID is required",
		})
	}

	req := new(UpdateQuoteRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	fields := map[string]interface{}{}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if req.Technician != "" {
		fields["technician"] = req.Technician
	}
	if req.Observations != "" {
		fields["observations"] = req.Observations
	}
	if req.ChecklistData != "" {
		fields["checklist_data"] = req.ChecklistData
	}

	quote, err := ctl.quotes.Update(c.Context(), uint(id), fields)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update quote",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"quote": quote})
}

// purgeExpired drops quotes dated before today. Best effort: failures are
// logged and never surface to the caller.
func (ctl *QuoteController) purgeExpired() {
	today := time.Now().Format("2006-01-02")
	if _, err := ctl.quotes.PurgeBefore(context.Background(), today); err != nil {
		ctl.log.Warn("failed to purge expired quotes", zap.Error(err))
	}
}

func (ctl *QuoteController) sendConfirmation(quote models.Quote) {
	if ctl.mailer == nil || quote.ClientEmail == "" {
		return
	}

	subject := "Appointment confirmed - " + quote.Branch
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your service appointment has been received.</p>
		<ul>
			<li><strong>Branch:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Vehicle:</strong> %s %s (%s)</li>
		</ul>
		<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, quote.ClientName, quote.Branch, quote.Date, quote.TimeSlot,
		quote.VehicleMake, quote.VehicleModel, quote.PlateNumber)

	if err := ctl.mailer.SendEmail(quote.ClientEmail, subject, body); err != nil {
		ctl.log.Warn("failed to send confirmation email",
			zap.Uint("quote_id", quote.ID), zap.Error(err))
	}
}
