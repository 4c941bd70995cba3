package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/scheduling"
)

// ErrSlotFull is returned when a (date, slot, branch) combination already
// holds the maximum number of quotes.
var ErrSlotFull = errors.New("time slot is fully booked")

// ErrNotFound is returned when a quote does not exist.
var ErrNotFound = errors.New("quote not found")

// QuoteStore is the persistence contract for quotes.
type QuoteStore interface {
	// Create inserts the quote, refusing it when the slot is at capacity.
	Create(ctx context.Context, quote *models.Quote) error
	// ListByDate returns all quotes for a calendar date ordered by slot time.
	ListByDate(ctx context.Context, date string) ([]models.Quote, error)
	// SlotsByDate returns the (slot, branch) pairs booked on a date. The
	// query is date-scoped only; branch filtering happens in memory.
	SlotsByDate(ctx context.Context, date string) ([]scheduling.Booking, error)
	GetByID(ctx context.Context, id uint) (models.Quote, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (models.Quote, error)
	// PurgeBefore deletes quotes dated strictly before the given date and
	// returns the number of rows removed.
	PurgeBefore(ctx context.Context, date string) (int64, error)
}

// GormQuoteStore implements QuoteStore on Postgres through GORM.
type GormQuoteStore struct {
	db *gorm.DB
}

func NewGormQuoteStore(db *gorm.DB) *GormQuoteStore {
	return &GormQuoteStore{db: db}
}

func (s *GormQuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize writers on the (date, slot, branch) key. Row locks on
		// the existing rows are not enough: two bookings arriving at count
		// 4 would each lock the same rows, read 4 and both insert. The
		// advisory lock is released with the transaction.
		err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(? || '|' || ? || '|' || ?))",
			quote.Date, quote.TimeSlot, quote.Branch,
		).Error
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.Quote{}).
			Where("date = ? AND time_slot = ? AND branch = ?",
				quote.Date, quote.TimeSlot, quote.Branch).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count >= int64(scheduling.MaxPerSlot) {
			return ErrSlotFull
		}
		return tx.Create(quote).Error
	})
}

func (s *GormQuoteStore) ListByDate(ctx context.Context, date string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time_slot asc").
		Find(&quotes).Error
	return quotes, err
}

func (s *GormQuoteStore) SlotsByDate(ctx context.Context, date string) ([]scheduling.Booking, error) {
	var bookings []scheduling.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("time_slot", "branch").
		Where("date = ?", date).
		Scan(&bookings).Error
	return bookings, err
}

func (s *GormQuoteStore) GetByID(ctx context.Context, id uint) (models.Quote, error) {
	var quote models.Quote
	err := s.db.WithContext(ctx).First(&quote, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Quote{}, ErrNotFound
	}
	return quote, err
}

func (s *GormQuoteStore) Update(ctx context.Context, id uint, fields map[string]interface{}) (models.Quote, error) {
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).
			Model(&models.Quote{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return models.Quote{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.Quote{}, ErrNotFound
		}
	}
	return s.GetByID(ctx, id)
}

func (s *GormQuoteStore) PurgeBefore(ctx context.Context, date string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("date < ?", date).
		Delete(&models.Quote{})
	return res.RowsAffected, res.Error
}
