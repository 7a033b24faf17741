package services

import (
	"fmt"
	"testing"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

// memSink keeps snapshots in memory for tests.
type memSink struct {
	blob  []byte
	saves int
}

func (m *memSink) Load() ([]byte, bool, error) {
	if m.blob == nil {
		return nil, false, nil
	}
	return m.blob, true, nil
}

func (m *memSink) Save(blob []byte) error {
	m.blob = blob
	m.saves++
	return nil
}

func newTestStore(t *testing.T, fill func(d *store.Data)) (*store.Store, *memSink) {
	t.Helper()
	sink := &memSink{}
	st, err := store.Open(sink)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if fill != nil {
		if err := st.Update(func(d *store.Data) error {
			fill(d)
			return nil
		}); err != nil {
			t.Fatalf("fill store: %v", err)
		}
	}
	return st, sink
}

// fixedClock returns a deterministic now function.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// sequentialIDs returns a deterministic id generator.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func testMedicine(id, name string, schedule regulatory.Schedule, qty int, price float64) models.Medicine {
	return models.Medicine{
		ID:       id,
		Name:     name,
		Batch:    "B-" + id,
		Qty:      qty,
		Price:    price,
		Schedule: schedule,
	}
}

func completeRx() models.Prescription {
	return models.Prescription{
		No:           "RX-1001",
		Prescriber:   "Dr. Nair",
		Reg:          "MH-2233",
		Patient:      "S. Verma",
		Address:      "14 Lake View",
		RetainedCopy: true,
	}
}

func stockOf(t *testing.T, st *store.Store, medID string) int {
	t.Helper()
	qty := -1
	st.View(func(d *store.Data) {
		if med, err := d.MedicineByID(medID); err == nil {
			qty = med.Qty
		}
	})
	if qty < 0 {
		t.Fatalf("medicine %s not found", medID)
	}
	return qty
}
