package store

import (
	"encoding/json"
	"fmt"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
)

// snapshotDocument is the persisted JSON layout. Key names match the
// original dashboard snapshots so old exports remain importable. Legacy
// keys (controlledLogs, compliance) are tolerated and dropped: the register
// is reconstructed on demand, never stored.
type snapshotDocument struct {
	Medicines   []models.Medicine   `json:"medicines"`
	Suppliers   []models.Supplier   `json:"suppliers"`
	Customers   []models.Customer   `json:"customers"`
	Sales       []models.Sale       `json:"sales"`
	Purchases   []models.Purchase   `json:"purchases"`
	Disposals   []models.Disposal   `json:"disposals"`
	GSTInvoices []models.GSTInvoice `json:"gstInvoices"`
	Settings    *models.Settings    `json:"settings"`
}

// Decode parses a snapshot blob into store data, applying the single
// defaulting/migration pass: missing collections become empty, settings get
// their defaults, and medicines without a schedule are backfilled from the
// legacy controlled flag (controlled -> X, otherwise OTC). Unrecognized
// schedule tags normalize to Schedule X.
func Decode(blob []byte) (*Data, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	d := &Data{
		Medicines:   doc.Medicines,
		Suppliers:   doc.Suppliers,
		Customers:   doc.Customers,
		Sales:       doc.Sales,
		Purchases:   doc.Purchases,
		Disposals:   doc.Disposals,
		GSTInvoices: doc.GSTInvoices,
	}
	if d.Medicines == nil {
		d.Medicines = []models.Medicine{}
	}
	if d.Suppliers == nil {
		d.Suppliers = []models.Supplier{}
	}
	if d.Customers == nil {
		d.Customers = []models.Customer{}
	}
	if d.Sales == nil {
		d.Sales = []models.Sale{}
	}
	if d.Purchases == nil {
		d.Purchases = []models.Purchase{}
	}
	if d.Disposals == nil {
		d.Disposals = []models.Disposal{}
	}
	if d.GSTInvoices == nil {
		d.GSTInvoices = []models.GSTInvoice{}
	}

	if doc.Settings != nil {
		d.Settings = *doc.Settings
	}
	if d.Settings.LowStockThreshold <= 0 {
		d.Settings.LowStockThreshold = models.DefaultLowStockThreshold
	}

	for i := range d.Medicines {
		m := &d.Medicines[i]
		if m.Schedule == "" {
			if m.Controlled != nil && *m.Controlled {
				m.Schedule = regulatory.ScheduleX
			} else {
				m.Schedule = regulatory.ScheduleOTC
			}
		} else {
			m.Schedule = regulatory.Normalize(string(m.Schedule))
		}
		m.Controlled = nil
	}

	return d, nil
}

// Encode serializes store data into the snapshot layout.
func Encode(d *Data) ([]byte, error) {
	doc := snapshotDocument{
		Medicines:   d.Medicines,
		Suppliers:   d.Suppliers,
		Customers:   d.Customers,
		Sales:       d.Sales,
		Purchases:   d.Purchases,
		Disposals:   d.Disposals,
		GSTInvoices: d.GSTInvoices,
		Settings:    &d.Settings,
	}
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return blob, nil
}
