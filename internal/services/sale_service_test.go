package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

func newSaleFixture(t *testing.T) (*saleService, *store.Store, *memSink) {
	st, sink := newTestStore(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("med-otc", "Paracetamol 500mg", regulatory.ScheduleOTC, 100, 2.50),
			testMedicine("med-h", "Amoxicillin 500mg", regulatory.ScheduleH, 50, 9.50),
			testMedicine("med-x", "Alprazolam 0.5mg", regulatory.ScheduleX, 5, 6.75),
		)
		d.Customers = append(d.Customers, models.Customer{ID: "cust-1", Name: "Ramesh Iyer"})
	})
	svc := &saleService{
		st:    st,
		now:   fixedClock(time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)),
		newID: sequentialIDs("sale"),
	}
	return svc, st, sink
}

func TestRecordSalesOTC(t *testing.T) {
	svc, st, _ := newSaleFixture(t)

	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{{MedID: "med-otc", Qty: 3}},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if !out.Accepted {
		t.Fatalf("expected accepted, got rejection %+v", out.Lines)
	}
	if got := stockOf(t, st, "med-otc"); got != 97 {
		t.Errorf("stock = %d, want 97", got)
	}
	if len(out.Sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(out.Sales))
	}
	sale := out.Sales[0]
	if sale.Total != 7.5 || sale.UnitPrice != 2.5 {
		t.Errorf("sale amounts = total %v unit %v, want 7.5 / 2.5", sale.Total, sale.UnitPrice)
	}
	if sale.Rx != nil {
		t.Errorf("OTC sale must not capture a prescription")
	}
}

func TestRecordSalesScheduleXComplete(t *testing.T) {
	svc, st, _ := newSaleFixture(t)

	out, err := svc.RecordSales(RecordSalesRequest{
		CustomerID: "cust-1",
		Lines:      []SaleLineRequest{{MedID: "med-x", Qty: 2, Rx: completeRx()}},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if !out.Accepted {
		t.Fatalf("expected accepted, got %+v", out.Lines)
	}
	if got := stockOf(t, st, "med-x"); got != 3 {
		t.Errorf("stock = %d, want 3", got)
	}
	if out.Sales[0].Rx == nil || out.Sales[0].Rx.No != "RX-1001" {
		t.Errorf("scheduled sale must retain the prescription record")
	}

	var last *time.Time
	st.View(func(d *store.Data) {
		cust, err := d.CustomerByID("cust-1")
		if err == nil {
			last = cust.LastPurchase
		}
	})
	if last == nil || !last.Equal(svc.now()) {
		t.Errorf("customer last purchase not advanced, got %v", last)
	}
}

func TestRecordSalesMissingRetainedCopy(t *testing.T) {
	svc, st, _ := newSaleFixture(t)

	rx := completeRx()
	rx.RetainedCopy = false
	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{{MedID: "med-x", Qty: 1, Rx: rx}},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if out.Accepted {
		t.Fatal("sale without retained copy must be rejected")
	}
	want := []string{"Retained Copy"}
	if !reflect.DeepEqual(out.Lines[0].Reasons, want) {
		t.Errorf("reasons = %v, want %v", out.Lines[0].Reasons, want)
	}
	if got := stockOf(t, st, "med-x"); got != 5 {
		t.Errorf("rejected sale must not touch stock, got %d", got)
	}
}

func TestRecordSalesInsufficientStock(t *testing.T) {
	svc, st, _ := newSaleFixture(t)

	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{{MedID: "med-x", Qty: 6, Rx: completeRx()}},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if out.Accepted {
		t.Fatal("oversell must be rejected")
	}
	if !reflect.DeepEqual(out.Lines[0].Reasons, []string{ReasonInsufficientStock}) {
		t.Errorf("reasons = %v", out.Lines[0].Reasons)
	}
	if got := stockOf(t, st, "med-x"); got != 5 {
		t.Errorf("stock changed on rejection, got %d", got)
	}
}

func TestRecordSalesReasonsAccumulate(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	// Oversell and an empty prescription at once: every violation reported.
	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{{MedID: "med-x", Qty: 6}},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	want := []string{
		ReasonInsufficientStock,
		"Prescription No.", "Prescriber", "Reg. No.", "Patient", "Address", "Retained Copy",
	}
	if !reflect.DeepEqual(out.Lines[0].Reasons, want) {
		t.Errorf("reasons = %v, want %v", out.Lines[0].Reasons, want)
	}
}

func TestRecordSalesAtomicAcrossLines(t *testing.T) {
	svc, st, sink := newSaleFixture(t)
	savesBefore := sink.saves

	// First line is fine, second oversells: nothing may be applied.
	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{
			{MedID: "med-otc", Qty: 1},
			{MedID: "med-x", Qty: 99, Rx: completeRx()},
		},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if out.Accepted {
		t.Fatal("attempt with a rejected line must be rejected as a whole")
	}
	if !out.Lines[0].OK {
		t.Errorf("first line should individually validate")
	}
	if got := stockOf(t, st, "med-otc"); got != 100 {
		t.Errorf("stock of accepted-looking line changed, got %d", got)
	}
	if len(svc.GetSales()) != 0 {
		t.Errorf("no sale may be recorded on rejection")
	}
	if sink.saves != savesBefore {
		t.Errorf("rejected attempt must not persist a snapshot")
	}
}

func TestRecordSalesSharedStockAcrossLines(t *testing.T) {
	svc, st, _ := newSaleFixture(t)

	// Two lines of the same medicine: the second sees stock already
	// claimed by the first.
	out, err := svc.RecordSales(RecordSalesRequest{
		Lines: []SaleLineRequest{
			{MedID: "med-x", Qty: 3, Rx: completeRx()},
			{MedID: "med-x", Qty: 3, Rx: completeRx()},
		},
	})
	if err != nil {
		t.Fatalf("RecordSales: %v", err)
	}
	if out.Accepted {
		t.Fatal("combined quantity exceeds stock, attempt must be rejected")
	}
	if out.Lines[0].OK != true || out.Lines[1].OK != false {
		t.Errorf("line outcomes = %v/%v, want true/false", out.Lines[0].OK, out.Lines[1].OK)
	}
	if got := stockOf(t, st, "med-x"); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestRecordSalesUnknownCustomer(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	_, err := svc.RecordSales(RecordSalesRequest{
		CustomerID: "no-such",
		Lines:      []SaleLineRequest{{MedID: "med-otc", Qty: 1}},
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordSalesNoLines(t *testing.T) {
	svc, _, _ := newSaleFixture(t)
	_, err := svc.RecordSales(RecordSalesRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGetSalesNewestFirst(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordSales(RecordSalesRequest{
			Lines: []SaleLineRequest{{MedID: "med-otc", Qty: 1}},
		}); err != nil {
			t.Fatalf("RecordSales: %v", err)
		}
	}
	sales := svc.GetSales()
	if len(sales) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(sales))
	}
	if sales[0].ID != "sale-3" || sales[2].ID != "sale-1" {
		t.Errorf("sales not newest first: %s, %s, %s", sales[0].ID, sales[1].ID, sales[2].ID)
	}
}
