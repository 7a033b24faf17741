// Package store owns the in-memory domain collections and their snapshot
// round-trip. It is the single source of truth: services mutate it through
// one critical section per user action (validate fully, then apply, then
// persist the whole snapshot), so a rejected validation never leaves a
// partial write behind.
package store

import (
	"fmt"
	"sync"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/storage"
)

// Data holds every domain collection plus settings.
type Data struct {
	Medicines   []models.Medicine
	Suppliers   []models.Supplier
	Customers   []models.Customer
	Sales       []models.Sale
	Purchases   []models.Purchase
	Disposals   []models.Disposal
	GSTInvoices []models.GSTInvoice
	Settings    models.Settings
}

func emptyData() *Data {
	return &Data{
		Medicines:   []models.Medicine{},
		Suppliers:   []models.Supplier{},
		Customers:   []models.Customer{},
		Sales:       []models.Sale{},
		Purchases:   []models.Purchase{},
		Disposals:   []models.Disposal{},
		GSTInvoices: []models.GSTInvoice{},
		Settings:    models.Settings{LowStockThreshold: models.DefaultLowStockThreshold},
	}
}

// MedicineByID returns a pointer into the medicines slice so callers inside
// an Update can mutate in place.
func (d *Data) MedicineByID(id string) (*models.Medicine, error) {
	for i := range d.Medicines {
		if d.Medicines[i].ID == id {
			return &d.Medicines[i], nil
		}
	}
	return nil, fmt.Errorf("%w: medicine %s", ErrNotFound, id)
}

func (d *Data) SupplierByID(id string) (*models.Supplier, error) {
	for i := range d.Suppliers {
		if d.Suppliers[i].ID == id {
			return &d.Suppliers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
}

func (d *Data) CustomerByID(id string) (*models.Customer, error) {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			return &d.Customers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
}

// Store wraps Data with a mutex and a persistence sink. The HTTP layer may
// run handlers concurrently; every user action is serialized here so the
// original's one-writer transaction model holds.
type Store struct {
	mu   sync.RWMutex
	data *Data
	sink storage.Sink
}

// Open loads the last snapshot from the sink, or starts empty when the sink
// holds nothing. A snapshot that exists but fails to parse is an error:
// starting empty over a corrupt snapshot would overwrite it on the next save.
func Open(sink storage.Sink) (*Store, error) {
	blob, ok, err := sink.Load()
	if err != nil {
		return nil, err
	}
	data := emptyData()
	if ok {
		data, err = Decode(blob)
		if err != nil {
			return nil, err
		}
	}
	return &Store{data: data, sink: sink}, nil
}

// Update runs fn as one atomic user action under the write lock. When fn
// returns an error nothing is persisted; fn must validate fully before
// mutating. On success the whole snapshot is saved to the sink.
func (s *Store) Update(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.data); err != nil {
		return err
	}
	return s.persistLocked()
}

// View runs fn under the read lock. fn must not retain references to the
// data after returning.
func (s *Store) View(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Empty reports whether the store holds no records at all.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Medicines) == 0 && len(s.data.Suppliers) == 0 &&
		len(s.data.Customers) == 0 && len(s.data.Sales) == 0
}

// ExportSnapshot serializes the current state.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Encode(s.data)
}

// ImportSnapshot replaces the whole store with the decoded blob. The blob
// is parsed and migrated before the swap, so a malformed import leaves the
// existing state untouched.
func (s *Store) ImportSnapshot(blob []byte) error {
	incoming, err := Decode(blob)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = incoming
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	blob, err := Encode(s.data)
	if err != nil {
		return err
	}
	if err := s.sink.Save(blob); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}
