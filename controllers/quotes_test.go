package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/scheduling"
	"github.com/tallercr/workshop-api/store"
)

type fakeQuoteStore struct {
	mu sync.Mutex

	createFn func(ctx context.Context, quote *models.Quote) error
	listFn   func(ctx context.Context, date string) ([]models.Quote, error)
	slotsFn  func(ctx context.Context, date string) ([]scheduling.Booking, error)
	getFn    func(ctx context.Context, id uint) (models.Quote, error)
	updateFn func(ctx context.Context, id uint, fields map[string]interface{}) (models.Quote, error)

	slotsCalls int
	purgeCalls int
}

func (f *fakeQuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, quote)
}

func (f *fakeQuoteStore) ListByDate(ctx context.Context, date string) ([]models.Quote, error) {
	if f.listFn == nil {
		panic("ListByDate not configured")
	}
	return f.listFn(ctx, date)
}

func (f *fakeQuoteStore) SlotsByDate(ctx context.Context, date string) ([]scheduling.Booking, error) {
	f.mu.Lock()
	f.slotsCalls++
	f.mu.Unlock()
	if f.slotsFn == nil {
		panic("SlotsByDate not configured")
	}
	return f.slotsFn(ctx, date)
}

func (f *fakeQuoteStore) GetByID(ctx context.Context, id uint) (models.Quote, error) {
	if f.getFn == nil {
		panic("GetByID not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeQuoteStore) Update(ctx context.Context, id uint, fields map[string]interface{}) (models.Quote, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, fields)
}

func (f *fakeQuoteStore) PurgeBefore(ctx context.Context, date string) (int64, error) {
	f.mu.Lock()
	f.purgeCalls++
	f.mu.Unlock()
	return 0, nil
}

func newQuoteApp(quotes store.QuoteStore) *fiber.App {
	app := fiber.New()
	ctl := NewQuoteController(quotes, nil, zap.NewNop())
	app.Post("/api/quotes", ctl.CreateQuote)
	app.Get("/api/quotes", ctl.GetQuotes)
	app.Get("/api/quotes/:id", ctl.GetQuote)
	app.Patch("/api/quotes/:id", ctl.UpdateQuote)
	return app
}

func postJSON(t *testing.T, app *fiber.App, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		t.Fatalf("unmarshal body %q: %v", raw, err)
	}
}

func TestCreateQuoteMissingFields(t *testing.T) {
	fake := &fakeQuoteStore{
		createFn: func(ctx context.Context, quote *models.Quote) error {
			t.Fatal("store must not be called for invalid payloads")
			return nil
		},
	}
	app := newQuoteApp(fake)

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName": "Carlos Jimenez",
		"branch":     "central",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Missing map[string]bool `json:"missing"`
	}
	decodeBody(t, resp, &body)

	want := map[string]bool{
		"clientName":  false,
		"clientEmail": true,
		"clientPhone": true,
		"branch":      false,
	}
	for field, missing := range want {
		if body.Missing[field] != missing {
			t.Fatalf("missing[%s] = %v, want %v", field, body.Missing[field], missing)
		}
	}
}

func TestCreateQuoteRejectsMalformedDate(t *testing.T) {
	app := newQuoteApp(&fakeQuoteStore{})

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName":  "Carlos Jimenez",
		"clientEmail": "carlos@example.com",
		"clientPhone": "8888-1111",
		"branch":      "central",
		"date":        "01/06/2024",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateQuoteRejectsUnknownSlot(t *testing.T) {
	app := newQuoteApp(&fakeQuoteStore{})

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName":  "Carlos Jimenez",
		"clientEmail": "carlos@example.com",
		"clientPhone": "8888-1111",
		"branch":      "central",
		"date":        "2026-06-01",
		"timeSlot":    "07:30",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateQuoteFullSlotConflicts(t *testing.T) {
	fake := &fakeQuoteStore{
		createFn: func(ctx context.Context, quote *models.Quote) error {
			return store.ErrSlotFull
		},
	}
	app := newQuoteApp(fake)

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName":  "Carlos Jimenez",
		"clientEmail": "carlos@example.com",
		"clientPhone": "8888-1111",
		"branch":      "central",
		"date":        "2026-06-01",
		"timeSlot":    "09:00",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateQuoteStoresPayload(t *testing.T) {
	var stored *models.Quote
	fake := &fakeQuoteStore{
		createFn: func(ctx context.Context, quote *models.Quote) error {
			stored = quote
			quote.ID = 7
			return nil
		},
	}
	app := newQuoteApp(fake)

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName":   "Carlos Jimenez",
		"clientEmail":  "carlos@example.com",
		"clientPhone":  "8888-1111",
		"branch":       "central",
		"serviceType":  "full-service",
		"date":         "2026-06-01",
		"timeSlot":     "09:00",
		"plateNumber":  "ABC-123",
		"vehicleMake":  "Toyota",
		"vehicleModel": "Hilux",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	if stored == nil {
		t.Fatal("store was not called")
	}
	if stored.Branch != "central" || stored.Date != "2026-06-01" || stored.TimeSlot != "09:00" {
		t.Fatalf("stored slot = (%s, %s, %s)", stored.Date, stored.TimeSlot, stored.Branch)
	}
	if stored.VehicleMake != "Toyota" || stored.PlateNumber != "ABC-123" {
		t.Fatalf("vehicle fields not mapped: %+v", stored)
	}

	var body struct {
		Quote models.Quote `json:"quote"`
	}
	decodeBody(t, resp, &body)
	if body.Quote.ID != 7 {
		t.Fatalf("response quote ID = %d, want 7", body.Quote.ID)
	}
}

func TestCreateQuoteTriggersPurge(t *testing.T) {
	fake := &fakeQuoteStore{
		createFn: func(ctx context.Context, quote *models.Quote) error {
			return nil
		},
	}
	app := newQuoteApp(fake)

	resp := postJSON(t, app, "/api/quotes", map[string]string{
		"clientName":  "Carlos Jimenez",
		"clientEmail": "carlos@example.com",
		"clientPhone": "8888-1111",
		"branch":      "central",
		"date":        "2026-06-01",
		"timeSlot":    "09:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	// The purge runs on a goroutine after the response is written.
	deadline := time.Now().Add(2 * time.Second)
	for {
		fake.mu.Lock()
		calls := fake.purgeCalls
		fake.mu.Unlock()
		if calls > 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("booking did not trigger a purge of expired quotes")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	fake := &fakeQuoteStore{
		getFn: func(ctx context.Context, id uint) (models.Quote, error) {
			return models.Quote{}, store.ErrNotFound
		},
	}
	app := newQuoteApp(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateQuoteOnlySuppliedFields(t *testing.T) {
	var gotFields map[string]interface{}
	fake := &fakeQuoteStore{
		updateFn: func(ctx context.Context, id uint, fields map[string]interface{}) (models.Quote, error) {
			gotFields = fields
			return models.Quote{ID: id, Status: models.QuoteStatusInProgress}, nil
		},
	}
	app := newQuoteApp(fake)

	body, _ := json.Marshal(map[string]string{
		"status":     "in_progress",
		"technician": "M. Rojas",
	})
	req := httptest.NewRequest(http.MethodPatch, "/api/quotes/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if len(gotFields) != 2 {
		t.Fatalf("fields = %v, want exactly status and technician", gotFields)
	}
	if gotFields["status"] != "in_progress" || gotFields["technician"] != "M. Rojas" {
		t.Fatalf("fields = %v", gotFields)
	}
}
