package models

import (
	"time"

	"pharmacy_backend/internal/regulatory"
)

// Medicine represents one stocked drug batch.
type Medicine struct {
	ID         string              `json:"id"`
	Name       string              `json:"name" binding:"required"`
	Batch      string              `json:"batch"`
	SupplierID string              `json:"supplierId"`
	Qty        int                 `json:"qty" binding:"gte=0"`
	Expiry     string              `json:"expiry"` // YYYY-MM-DD
	Rating     int                 `json:"rating,omitempty"`
	Price      float64             `json:"price" binding:"gte=0"`
	Schedule   regulatory.Schedule `json:"schedule"`

	// Controlled is the legacy boolean from pre-schedule snapshots. It is
	// read once during snapshot migration and never written back.
	Controlled *bool `json:"controlled,omitempty"`
}

// DaysUntilExpiry returns the whole days between now and the expiry date,
// negative when already expired. ok is false when the expiry is unset or
// unparseable.
func (m *Medicine) DaysUntilExpiry(now time.Time) (int, bool) {
	if m.Expiry == "" {
		return 0, false
	}
	exp, err := time.Parse("2006-01-02", m.Expiry)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(today).Hours() / 24), true
}

// Supplier represents a wholesale supplier record.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Notes   string `json:"notes"`
}
