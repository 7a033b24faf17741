package services

import (
	"errors"
	"testing"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

func newInventoryFixture(t *testing.T, fill func(d *store.Data)) (*inventoryService, *store.Store) {
	st, _ := newTestStore(t, fill)
	svc := &inventoryService{
		st:    st,
		now:   fixedClock(time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)),
		newID: sequentialIDs("med"),
	}
	return svc, st
}

func TestCreateMedicineScheduleDefaults(t *testing.T) {
	svc, _ := newInventoryFixture(t, nil)

	med, err := svc.CreateMedicine(MedicineRequest{Name: "Paracetamol 500mg"})
	if err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	if med.Schedule != regulatory.ScheduleOTC {
		t.Errorf("absent schedule tag should default to OTC, got %q", med.Schedule)
	}

	med, err = svc.CreateMedicine(MedicineRequest{Name: "Mystery 10mg", Schedule: "banned"})
	if err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	if med.Schedule != regulatory.ScheduleX {
		t.Errorf("unknown schedule tag should fail closed to X, got %q", med.Schedule)
	}
}

func TestCreateMedicineUnknownSupplier(t *testing.T) {
	svc, _ := newInventoryFixture(t, nil)
	_, err := svc.CreateMedicine(MedicineRequest{Name: "Paracetamol", SupplierID: "nope"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRestockRecordsPurchase(t *testing.T) {
	svc, st := newInventoryFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines, testMedicine("m1", "Metformin 500mg", regulatory.ScheduleH, 10, 4.20))
	})

	purchase, err := svc.Restock("m1", RestockRequest{Qty: 40})
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if got := stockOf(t, st, "m1"); got != 50 {
		t.Errorf("stock = %d, want 50", got)
	}
	if len(purchase.Items) != 1 || purchase.Items[0].Qty != 40 || purchase.Items[0].MedID != "m1" {
		t.Errorf("purchase items = %+v", purchase.Items)
	}
	st.View(func(d *store.Data) {
		if len(d.Purchases) != 1 {
			t.Errorf("purchase record not appended")
		}
	})

	if _, err := svc.Restock("m1", RestockRequest{Qty: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero quantity, got %v", err)
	}
}

func TestDisposeBoundedByStock(t *testing.T) {
	svc, st := newInventoryFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines, testMedicine("m1", "Tramadol 50mg", regulatory.ScheduleH1, 10, 11.00))
	})

	if _, err := svc.Dispose("m1", DisposeRequest{Qty: 11, Reason: "expired"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversized disposal, got %v", err)
	}
	if got := stockOf(t, st, "m1"); got != 10 {
		t.Errorf("stock changed on rejected disposal, got %d", got)
	}

	disposal, err := svc.Dispose("m1", DisposeRequest{Qty: 4, Reason: "damaged"})
	if err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if disposal.Reason != "damaged" || disposal.Qty != 4 {
		t.Errorf("disposal = %+v", disposal)
	}
	if got := stockOf(t, st, "m1"); got != 6 {
		t.Errorf("stock = %d, want 6", got)
	}
}

func TestLowStockSuggestions(t *testing.T) {
	svc, _ := newInventoryFixture(t, func(d *store.Data) {
		d.Settings.LowStockThreshold = 20
		d.Suppliers = append(d.Suppliers, models.Supplier{ID: "sup-1", Name: "Apex Pharma Agency"})
		low := testMedicine("m1", "Azithromycin 250mg", regulatory.ScheduleH, 5, 14.00)
		low.SupplierID = "sup-1"
		d.Medicines = append(d.Medicines,
			low,
			testMedicine("m2", "Cetirizine 10mg", regulatory.ScheduleOTC, 18, 3.00),
			testMedicine("m3", "Paracetamol 500mg", regulatory.ScheduleOTC, 200, 2.50),
		)
	})

	rows := svc.LowStock()
	if len(rows) != 2 {
		t.Fatalf("expected 2 low-stock rows, got %d", len(rows))
	}
	// Sorted by quantity ascending.
	if rows[0].Medicine.ID != "m1" || rows[1].Medicine.ID != "m2" {
		t.Errorf("order = %s, %s", rows[0].Medicine.ID, rows[1].Medicine.ID)
	}
	// suggested = 2*threshold - qty, floored at threshold.
	if rows[0].Suggested != 35 {
		t.Errorf("suggested = %d, want 35", rows[0].Suggested)
	}
	if rows[1].Suggested != 22 {
		t.Errorf("suggested = %d, want 22", rows[1].Suggested)
	}
	if rows[0].Supplier != "Apex Pharma Agency" {
		t.Errorf("supplier = %q", rows[0].Supplier)
	}
}

func TestExpiringWindowAndOrder(t *testing.T) {
	svc, _ := newInventoryFixture(t, func(d *store.Data) {
		expired := testMedicine("m1", "ORS Sachet", regulatory.ScheduleOTC, 5, 18.00)
		expired.Expiry = "2026-03-01"
		soon := testMedicine("m2", "Amoxicillin 500mg", regulatory.ScheduleH, 5, 9.50)
		soon.Expiry = "2026-03-20"
		far := testMedicine("m3", "Metformin 500mg", regulatory.ScheduleH, 5, 4.20)
		far.Expiry = "2027-01-01"
		noDate := testMedicine("m4", "Paracetamol 500mg", regulatory.ScheduleOTC, 5, 2.50)
		d.Medicines = append(d.Medicines, soon, far, expired, noDate)
	})

	rows := svc.Expiring()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Medicine.ID != "m1" || !rows[0].Expired {
		t.Errorf("expired entry must sort first, got %+v", rows[0])
	}
	if rows[1].Medicine.ID != "m2" || rows[1].DaysLeft != 10 {
		t.Errorf("row = %+v, want m2 with 10 days left", rows[1])
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newInventoryFixture(t, func(d *store.Data) {
		d.Settings.LowStockThreshold = 10
		a := testMedicine("m1", "Paracetamol 500mg", regulatory.ScheduleOTC, 4, 2.50)
		a.Expiry = "2026-03-01" // expired
		b := testMedicine("m2", "Amoxicillin 500mg", regulatory.ScheduleH, 100, 9.50)
		b.Expiry = "2026-03-20" // soon
		d.Medicines = append(d.Medicines, a, b)
		d.Sales = append(d.Sales,
			models.Sale{ID: "s1", Date: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), Total: 25.00},
			models.Sale{ID: "s2", Date: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), Total: 99.00},
		)
	})

	sum := svc.Summary()
	if sum.SKUs != 2 || sum.TotalUnits != 104 {
		t.Errorf("SKUs/units = %d/%d", sum.SKUs, sum.TotalUnits)
	}
	if sum.LowStockItems != 1 || sum.ExpiredItems != 1 || sum.ExpiringSoon != 1 {
		t.Errorf("low/expired/soon = %d/%d/%d", sum.LowStockItems, sum.ExpiredItems, sum.ExpiringSoon)
	}
	if sum.StockValue != 960.00 {
		t.Errorf("stock value = %v, want 960", sum.StockValue)
	}
	if sum.RevenueToday != 25.00 {
		t.Errorf("revenue today = %v, want 25", sum.RevenueToday)
	}
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newInventoryFixture(t, nil)

	if _, err := svc.UpdateSettings(0); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for threshold 0, got %v", err)
	}
	settings, err := svc.UpdateSettings(45)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if settings.LowStockThreshold != 45 {
		t.Errorf("threshold = %d, want 45", settings.LowStockThreshold)
	}
	if got := svc.GetSettings().LowStockThreshold; got != 45 {
		t.Errorf("persisted threshold = %d, want 45", got)
	}
}
