package services

import (
	"fmt"
	"strings"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

// deletedMarker is rendered for sales whose medicine record was removed.
const deletedMarker = "(deleted)"

// GSTInvoiceRequest creates one tax invoice.
type GSTInvoiceRequest struct {
	InvoiceNo string                  `json:"invoiceNo" binding:"required"`
	Items     []models.GSTInvoiceItem `json:"items" binding:"required"`
}

// ReportService aggregates store records into audit artifacts. All methods
// are read-only snapshots of current state; ranges are month-granular
// ("YYYY-MM") and inclusive, with "to" extending to the end of that month.
type ReportService interface {
	BuildAudit(from, to string) (*models.AuditBundle, error)
	PendingRx(from, to string) ([]models.PendingRxRow, error)
	ScheduleXRegister(from, to string) (models.RegisterResult, error)
	CreateGSTInvoice(req GSTInvoiceRequest) (*models.GSTInvoice, error)
	GetGSTInvoices() []models.GSTInvoice
}

type reportService struct {
	st       *store.Store
	register RegisterService
	now      func() time.Time
}

// NewReportService creates a ReportService backed by the given store and
// register reconstructor.
func NewReportService(st *store.Store, register RegisterService) ReportService {
	return &reportService{st: st, register: register, now: time.Now}
}

func parseRange(from, to string) (*time.Time, *time.Time, error) {
	fromT, err := parseMonth(from, true)
	if err != nil {
		return nil, nil, err
	}
	toT, err := parseMonth(to, false)
	if err != nil {
		return nil, nil, err
	}
	return fromT, toT, nil
}

func prescriptionValues(rx *models.Prescription) regulatory.Values {
	if rx == nil {
		return regulatory.Values{}
	}
	return regulatory.Values{
		No:           rx.No,
		Prescriber:   rx.Prescriber,
		Reg:          rx.Reg,
		Patient:      rx.Patient,
		Address:      rx.Address,
		RetainedCopy: rx.RetainedCopy,
	}
}

func (s *reportService) BuildAudit(from, to string) (*models.AuditBundle, error) {
	fromT, toT, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	bundle := &models.AuditBundle{}
	s.st.View(func(d *store.Data) {
		medByID := make(map[string]*models.Medicine, len(d.Medicines))
		for i := range d.Medicines {
			medByID[d.Medicines[i].ID] = &d.Medicines[i]
		}
		custByID := make(map[string]*models.Customer, len(d.Customers))
		for i := range d.Customers {
			custByID[d.Customers[i].ID] = &d.Customers[i]
		}
		supplierName := supplierIndex(d)

		bundle.Customers = make([]models.CustomerReportRow, 0, len(d.Customers))
		for _, c := range d.Customers {
			chronic := "No"
			if c.Chronic {
				chronic = "Yes"
			}
			lastPurchase := ""
			if c.LastPurchase != nil {
				lastPurchase = c.LastPurchase.Format(time.RFC3339)
			}
			bundle.Customers = append(bundle.Customers, models.CustomerReportRow{
				Name:         c.Name,
				Phone:        c.Phone,
				Chronic:      chronic,
				Conditions:   c.Conditions,
				RefillDays:   c.RefillCycle(),
				LastPurchase: lastPurchase,
			})
		}

		bundle.Purchases = []models.PurchaseReportRow{}
		for _, p := range d.Purchases {
			if !inRange(p.Date, fromT, toT) {
				continue
			}
			supplier := supplierName[p.SupplierID]
			if supplier == "" {
				supplier = p.SupplierID
			}
			for _, it := range p.Items {
				medName := it.MedID
				if med, ok := medByID[it.MedID]; ok {
					medName = med.Name
				}
				bundle.Purchases = append(bundle.Purchases, models.PurchaseReportRow{
					Date:     p.Date,
					Supplier: supplier,
					Med:      medName,
					Batch:    it.Batch,
					Qty:      it.Qty,
					Price:    it.Price,
					Amount:   round2(float64(it.Qty) * it.Price),
				})
			}
		}

		bundle.Sales = []models.SaleReportRow{}
		bundle.HXSales = []models.SaleReportRow{}
		bundle.PendingRx = []models.PendingRxRow{}
		for _, sale := range d.Sales {
			if !inRange(sale.Date, fromT, toT) {
				continue
			}
			med := medByID[sale.MedID]
			cust := custByID[sale.CustomerID]
			row := saleRow(sale, med, cust)
			bundle.Sales = append(bundle.Sales, row)
			if row.Schedule == string(regulatory.ScheduleH) || row.Schedule == string(regulatory.ScheduleH1) {
				bundle.HXSales = append(bundle.HXSales, row)
			}
			if pending, ok := pendingRow(sale, med, cust); ok {
				bundle.PendingRx = append(bundle.PendingRx, pending)
			}
		}

		bundle.Disposals = []models.DisposalReportRow{}
		for _, disp := range d.Disposals {
			if !inRange(disp.Date, fromT, toT) {
				continue
			}
			medName := disp.MedID
			if med, ok := medByID[disp.MedID]; ok {
				medName = med.Name
			}
			bundle.Disposals = append(bundle.Disposals, models.DisposalReportRow{
				Date:   disp.Date,
				Med:    medName,
				Batch:  disp.Batch,
				Qty:    disp.Qty,
				Reason: disp.Reason,
			})
		}

		bundle.GST = []models.GSTReportRow{}
		for _, inv := range d.GSTInvoices {
			if !inRange(inv.Date, fromT, toT) {
				continue
			}
			total := 0.0
			for _, it := range inv.Items {
				line := float64(it.Qty) * it.Price
				total += line + line*it.GSTPercent/100
			}
			bundle.GST = append(bundle.GST, models.GSTReportRow{
				Date:      inv.Date,
				InvoiceNo: inv.InvoiceNo,
				Items:     len(inv.Items),
				Total:     round2(total),
			})
		}
	})

	register := s.register.BuildScheduleXRegister()
	filtered := models.RegisterResult{Rows: []models.RegisterRow{}, Warnings: register.Warnings}
	for _, row := range register.Rows {
		if inRange(row.Date, fromT, toT) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	bundle.ScheduleXRegister = filtered

	bundle.Meta = models.AuditMeta{
		GeneratedAt: s.now(),
		RangeFrom:   rangeLabel(fromT),
		RangeTo:     rangeLabel(toT),
		Version:     models.AuditVersion,
	}
	return bundle, nil
}

func rangeLabel(t *time.Time) string {
	if t == nil {
		return "All"
	}
	return t.Format(time.RFC3339)
}

func saleRow(sale models.Sale, med *models.Medicine, cust *models.Customer) models.SaleReportRow {
	row := models.SaleReportRow{
		Date:      sale.Date,
		Med:       deletedMarker,
		Qty:       sale.Qty,
		UnitPrice: sale.UnitPrice,
		Schedule:  string(regulatory.ScheduleOTC),
	}
	if med != nil {
		row.Med = med.Name
		row.Batch = med.Batch
		row.Schedule = string(med.Schedule)
		if row.UnitPrice == 0 {
			row.UnitPrice = med.Price
		}
	}
	row.Amount = round2(float64(sale.Qty) * row.UnitPrice)
	if cust != nil {
		row.Customer = cust.Name
		row.Phone = cust.Phone
	}
	if sale.Rx != nil {
		row.RxNo = sale.Rx.No
		row.Prescriber = sale.Rx.Prescriber
		row.RegNo = sale.Rx.Reg
		row.Patient = sale.Rx.Patient
		row.PatientAddress = sale.Rx.Address
		if sale.Rx.RetainedCopy {
			row.RetainedCopy = "Yes"
		}
	}
	return row
}

// pendingRow applies the required-field check retroactively: a sale may
// have been recorded before validation existed, or arrived via import.
func pendingRow(sale models.Sale, med *models.Medicine, cust *models.Customer) (models.PendingRxRow, bool) {
	if med == nil || med.Schedule == regulatory.ScheduleOTC {
		return models.PendingRxRow{}, false
	}
	missing := regulatory.Missing(med.Schedule, prescriptionValues(sale.Rx))
	if len(missing) == 0 {
		return models.PendingRxRow{}, false
	}
	row := models.PendingRxRow{
		Date:     sale.Date,
		Med:      med.Name,
		Schedule: string(med.Schedule),
		Missing:  strings.Join(missing, ", "),
	}
	if cust != nil {
		row.Customer = cust.Name
		row.Phone = cust.Phone
	}
	row.Message = fmt.Sprintf(
		"Hello %s, we still need the following for your %s (%s) sale on %s: %s. Please share the prescription / details.",
		row.Customer, row.Med, row.Schedule, row.Date.Format("02 Jan 2006"), row.Missing)
	return row, true
}

func (s *reportService) PendingRx(from, to string) ([]models.PendingRxRow, error) {
	bundle, err := s.BuildAudit(from, to)
	if err != nil {
		return nil, err
	}
	return bundle.PendingRx, nil
}

func (s *reportService) ScheduleXRegister(from, to string) (models.RegisterResult, error) {
	fromT, toT, err := parseRange(from, to)
	if err != nil {
		return models.RegisterResult{}, err
	}
	register := s.register.BuildScheduleXRegister()
	filtered := models.RegisterResult{Rows: []models.RegisterRow{}, Warnings: register.Warnings}
	for _, row := range register.Rows {
		if inRange(row.Date, fromT, toT) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered, nil
}

func (s *reportService) CreateGSTInvoice(req GSTInvoiceRequest) (*models.GSTInvoice, error) {
	inv := models.GSTInvoice{
		Date:      s.now(),
		InvoiceNo: req.InvoiceNo,
		Items:     req.Items,
	}
	err := s.st.Update(func(d *store.Data) error {
		for _, it := range req.Items {
			if _, err := d.MedicineByID(it.MedID); err != nil {
				return err
			}
		}
		d.GSTInvoices = append(d.GSTInvoices, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *reportService) GetGSTInvoices() []models.GSTInvoice {
	var invs []models.GSTInvoice
	s.st.View(func(d *store.Data) {
		invs = append([]models.GSTInvoice(nil), d.GSTInvoices...)
	})
	return invs
}
