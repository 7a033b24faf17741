package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

func newReportFixture(t *testing.T, fill func(d *store.Data)) (*reportService, *store.Store) {
	st, _ := newTestStore(t, fill)
	svc := &reportService{
		st:       st,
		register: &registerService{st: st},
		now:      fixedClock(time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)),
	}
	return svc, st
}

func TestParseMonthBounds(t *testing.T) {
	from, err := parseMonth("2026-02", true)
	if err != nil {
		t.Fatalf("parseMonth: %v", err)
	}
	if !from.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	to, err := parseMonth("2026-02", false)
	if err != nil {
		t.Fatalf("parseMonth: %v", err)
	}
	// Inclusive upper bound: the last instant of February.
	if to.Day() != 28 || to.Hour() != 23 || to.Month() != time.February {
		t.Errorf("to = %v, want end of February", to)
	}

	if empty, err := parseMonth("", true); err != nil || empty != nil {
		t.Errorf("empty bound should parse to nil, got %v, %v", empty, err)
	}
	if _, err := parseMonth("02-2026", true); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for malformed month, got %v", err)
	}
}

func TestBuildAuditRangeFilter(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("m1", "Paracetamol 500mg", regulatory.ScheduleOTC, 100, 2.50))
		d.Sales = append(d.Sales,
			models.Sale{ID: "s1", Date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), MedID: "m1", Qty: 1, UnitPrice: 2.50},
			models.Sale{ID: "s2", Date: time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), MedID: "m1", Qty: 1, UnitPrice: 2.50},
			models.Sale{ID: "s3", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), MedID: "m1", Qty: 1, UnitPrice: 2.50},
		)
	})

	bundle, err := svc.BuildAudit("2026-02", "2026-02")
	if err != nil {
		t.Fatalf("BuildAudit: %v", err)
	}
	if len(bundle.Sales) != 1 {
		t.Fatalf("expected 1 sale in February, got %d", len(bundle.Sales))
	}
	if bundle.Meta.Version != models.AuditVersion {
		t.Errorf("version = %q", bundle.Meta.Version)
	}
	if bundle.Meta.RangeFrom == "All" || bundle.Meta.RangeTo == "All" {
		t.Errorf("bounded range labeled All: %+v", bundle.Meta)
	}

	all, err := svc.BuildAudit("", "")
	if err != nil {
		t.Fatalf("BuildAudit: %v", err)
	}
	if len(all.Sales) != 3 {
		t.Errorf("unbounded audit should carry all sales, got %d", len(all.Sales))
	}
	if all.Meta.RangeFrom != "All" || all.Meta.RangeTo != "All" {
		t.Errorf("meta = %+v, want All/All", all.Meta)
	}
}

func TestBuildAuditPendingRx(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("m-otc", "Paracetamol 500mg", regulatory.ScheduleOTC, 100, 2.50),
			testMedicine("m-h", "Amoxicillin 500mg", regulatory.ScheduleH, 50, 9.50),
			testMedicine("m-x", "Alprazolam 0.5mg", regulatory.ScheduleX, 10, 6.75))
		rx := completeRx()
		d.Sales = append(d.Sales,
			// OTC: never pending.
			models.Sale{ID: "s1", Date: day(1), MedID: "m-otc", Qty: 1},
			// H sale without prescription, e.g. imported from an old export.
			models.Sale{ID: "s2", Date: day(2), MedID: "m-h", Qty: 1},
			// Complete X sale: not pending.
			models.Sale{ID: "s3", Date: day(3), MedID: "m-x", Qty: 1, Rx: &rx},
			// Sale of a removed medicine: skipped, nothing to check against.
			models.Sale{ID: "s4", Date: day(4), MedID: "gone", Qty: 1},
		)
	})

	pending, err := svc.PendingRx("", "")
	if err != nil {
		t.Fatalf("PendingRx: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(pending))
	}
	if pending[0].Med != "Amoxicillin 500mg" {
		t.Errorf("pending med = %q", pending[0].Med)
	}
	if pending[0].Missing != "Prescription No., Prescriber, Reg. No." {
		t.Errorf("missing = %q", pending[0].Missing)
	}
	if !strings.Contains(pending[0].Message, "we still need the following for your Amoxicillin 500mg (H) sale") {
		t.Errorf("message = %q", pending[0].Message)
	}
}

func TestBuildAuditHXSales(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("m-otc", "Paracetamol 500mg", regulatory.ScheduleOTC, 100, 2.50),
			testMedicine("m-h", "Amoxicillin 500mg", regulatory.ScheduleH, 50, 9.50),
			testMedicine("m-h1", "Tramadol 50mg", regulatory.ScheduleH1, 50, 11.00),
			testMedicine("m-x", "Alprazolam 0.5mg", regulatory.ScheduleX, 10, 6.75))
		rx := completeRx()
		d.Sales = append(d.Sales,
			models.Sale{ID: "s1", Date: day(1), MedID: "m-otc", Qty: 1},
			models.Sale{ID: "s2", Date: day(2), MedID: "m-h", Qty: 1, Rx: &rx},
			models.Sale{ID: "s3", Date: day(3), MedID: "m-h1", Qty: 1, Rx: &rx},
			models.Sale{ID: "s4", Date: day(4), MedID: "m-x", Qty: 1, Rx: &rx},
		)
	})

	bundle, err := svc.BuildAudit("", "")
	if err != nil {
		t.Fatalf("BuildAudit: %v", err)
	}
	// The H/H1 sheet excludes OTC and X; X lives in its own register.
	if len(bundle.HXSales) != 2 {
		t.Fatalf("expected 2 H/H1 rows, got %d", len(bundle.HXSales))
	}
	if len(bundle.ScheduleXRegister.Rows) != 1 {
		t.Errorf("register rows = %d, want 1", len(bundle.ScheduleXRegister.Rows))
	}
}

func TestBuildAuditDeletedMedicine(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Sales = append(d.Sales,
			models.Sale{ID: "s1", Date: day(1), MedID: "gone", Qty: 2, UnitPrice: 3.00})
	})

	bundle, err := svc.BuildAudit("", "")
	if err != nil {
		t.Fatalf("BuildAudit: %v", err)
	}
	if len(bundle.Sales) != 1 {
		t.Fatalf("expected 1 sale row, got %d", len(bundle.Sales))
	}
	if bundle.Sales[0].Med != "(deleted)" {
		t.Errorf("med = %q, want deleted marker", bundle.Sales[0].Med)
	}
	if bundle.Sales[0].Amount != 6.00 {
		t.Errorf("amount = %v, want 6", bundle.Sales[0].Amount)
	}
}

func TestGSTInvoiceTotals(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("m1", "Paracetamol 500mg", regulatory.ScheduleOTC, 100, 2.50))
	})

	_, err := svc.CreateGSTInvoice(GSTInvoiceRequest{
		InvoiceNo: "INV-7",
		Items: []models.GSTInvoiceItem{
			{MedID: "m1", Qty: 10, Price: 2.50, GSTPercent: 12},
		},
	})
	if err != nil {
		t.Fatalf("CreateGSTInvoice: %v", err)
	}

	bundle, err := svc.BuildAudit("", "")
	if err != nil {
		t.Fatalf("BuildAudit: %v", err)
	}
	if len(bundle.GST) != 1 {
		t.Fatalf("expected 1 GST row, got %d", len(bundle.GST))
	}
	// 25.00 plus 12% tax.
	if bundle.GST[0].Total != 28.00 {
		t.Errorf("total = %v, want 28", bundle.GST[0].Total)
	}

	_, err = svc.CreateGSTInvoice(GSTInvoiceRequest{
		InvoiceNo: "INV-8",
		Items:     []models.GSTInvoiceItem{{MedID: "nope", Qty: 1, Price: 1}},
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown medicine, got %v", err)
	}
	if got := len(svc.GetGSTInvoices()); got != 1 {
		t.Errorf("rejected invoice persisted, have %d", got)
	}
}

func TestScheduleXRegisterRangeKeepsWarnings(t *testing.T) {
	svc, _ := newReportFixture(t, func(d *store.Data) {
		d.Medicines = append(d.Medicines,
			testMedicine("m-x", "Zolpidem 10mg", regulatory.ScheduleX, 0, 12.50))
		rx := completeRx()
		// January issue with no receipt: warning originates outside the
		// requested range but still matters to the auditor.
		d.Sales = append(d.Sales,
			models.Sale{ID: "s1", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), MedID: "m-x", Qty: 1, Rx: &rx})
	})

	result, err := svc.ScheduleXRegister("2026-02", "2026-02")
	if err != nil {
		t.Fatalf("ScheduleXRegister: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Errorf("expected no rows in range, got %d", len(result.Rows))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "negative balance") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}
