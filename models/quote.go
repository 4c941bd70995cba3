package models

import (
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusPending    QuoteStatus = "pending"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusCanceled   QuoteStatus = "canceled"
)

// Quote is a service appointment booked by a client for a branch,
// date and time slot.
type Quote struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ClientName     string `json:"client_name"`
	ClientEmail    string `json:"client_email"`
	ClientPhone    string `json:"client_phone"`
	ClientRegion   string `json:"client_region"`
	ClientCity     string `json:"client_city"`
	ClientDistrict string `json:"client_district"`

	Branch      string `json:"branch" gorm:"index"`
	ServiceType string `json:"service_type"`
	// Date is the calendar day of the appointment, YYYY-MM-DD. Stored as
	// text: a SQL date column scans back through database/sql as an
	// RFC3339 timestamp, which would corrupt the value clients submitted.
	Date string `json:"date" gorm:"index"`
	// TimeSlot is the canonical 24h slot value, e.g. "08:00".
	TimeSlot string `json:"time_slot"`

	PlateType    string `json:"plate_type"`
	PlateNumber  string `json:"plate_number"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	Issue        string `json:"issue"`

	Status        QuoteStatus `json:"status"`
	Technician    string      `json:"technician"`
	Observations  string      `json:"observations"`
	ChecklistData string      `json:"checklist_data" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = QuoteStatusPending
	}
	return nil
}
