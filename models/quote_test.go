package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestQuoteDateColumnStaysText(t *testing.T) {
	s, err := schema.Parse(&Quote{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	field := s.LookUpField("Date")
	if field == nil {
		t.Fatal("quote schema has no date field")
	}
	if field.DBName != "date" {
		t.Fatalf("date column name = %q, want date", field.DBName)
	}
	// A SQL date column round-trips "2026-06-01" back as
	// "2026-06-01T00:00:00Z"; the column must stay text so reads return
	// the exact string that was written.
	if field.DataType != schema.String {
		t.Fatalf("date column type = %q, want %q", field.DataType, schema.String)
	}
	if typ, ok := field.TagSettings["TYPE"]; ok {
		t.Fatalf("date field overrides its column type to %q", typ)
	}
}

func TestQuoteBeforeCreateDefaultsStatus(t *testing.T) {
	q := &Quote{}
	if err := q.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if q.Status != QuoteStatusPending {
		t.Fatalf("status = %q, want %q", q.Status, QuoteStatusPending)
	}

	q = &Quote{Status: QuoteStatusCompleted}
	if err := q.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if q.Status != QuoteStatusCompleted {
		t.Fatalf("status = %q, want it untouched", q.Status)
	}
}
