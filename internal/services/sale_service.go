package services

import (
	"errors"
	"fmt"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"

	"github.com/google/uuid"
)

// ReasonInsufficientStock is the rejection reason for a quantity that is
// not positive or exceeds the medicine's stock.
const ReasonInsufficientStock = "insufficient stock"

// errRejected aborts the store update without persisting when any sale line
// fails validation. It never leaves this file.
var errRejected = errors.New("sale rejected")

// --- DTOs ---

// SaleLineRequest is one line of a sale attempt.
type SaleLineRequest struct {
	MedID string              `json:"medId" binding:"required"`
	Qty   int                 `json:"qty" binding:"required"`
	Rx    models.Prescription `json:"rx"`
}

// RecordSalesRequest is a multi-line sale attempt, optionally linked to a
// customer.
type RecordSalesRequest struct {
	CustomerID string            `json:"customerId"`
	Lines      []SaleLineRequest `json:"lines" binding:"required"`
}

// SaleLineResult is the validation outcome for one line. Reasons carries
// every violation, not just the first, so the operator can fix the whole
// line in one pass.
type SaleLineResult struct {
	MedID    string   `json:"medId"`
	Medicine string   `json:"medicine"`
	OK       bool     `json:"ok"`
	Reasons  []string `json:"reasons,omitempty"`

	rx *models.Prescription
}

// RecordSalesOutcome reports whether the whole attempt was applied. The
// attempt is one atomic transaction: if any line is rejected, no line is
// recorded and stock is unchanged.
type RecordSalesOutcome struct {
	Accepted bool             `json:"accepted"`
	Lines    []SaleLineResult `json:"lines"`
	Sales    []models.Sale    `json:"sales,omitempty"`
}

// --- SaleService ---

type SaleService interface {
	RecordSales(req RecordSalesRequest) (*RecordSalesOutcome, error)
	GetSales() []models.Sale
}

type saleService struct {
	st    *store.Store
	now   func() time.Time
	newID func() string
}

// NewSaleService creates a SaleService backed by the given store.
func NewSaleService(st *store.Store) SaleService {
	return &saleService{
		st:    st,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// validateSaleLine is the pure decision function: no mutation happens here.
// availableQty is the stock left after earlier lines of the same attempt.
func validateSaleLine(med *models.Medicine, qty, availableQty int, rx models.Prescription) SaleLineResult {
	res := SaleLineResult{MedID: med.ID, Medicine: med.Name}

	if qty <= 0 || qty > availableQty {
		res.Reasons = append(res.Reasons, ReasonInsufficientStock)
	}

	res.Reasons = append(res.Reasons, regulatory.Missing(med.Schedule, regulatory.Values{
		No:           rx.No,
		Prescriber:   rx.Prescriber,
		Reg:          rx.Reg,
		Patient:      rx.Patient,
		Address:      rx.Address,
		RetainedCopy: rx.RetainedCopy,
	})...)

	if len(res.Reasons) > 0 {
		return res
	}

	res.OK = true
	if med.Schedule != regulatory.ScheduleOTC {
		captured := rx
		res.rx = &captured
	}
	return res
}

func (s *saleService) RecordSales(req RecordSalesRequest) (*RecordSalesOutcome, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one sale line is required", ErrValidation)
	}

	outcome := &RecordSalesOutcome{}
	err := s.st.Update(func(d *store.Data) error {
		var customer *models.Customer
		if req.CustomerID != "" {
			var err error
			customer, err = d.CustomerByID(req.CustomerID)
			if err != nil {
				return err
			}
		}

		// Validate every line first; remaining tracks stock consumed by
		// earlier lines of this same attempt.
		remaining := make(map[string]int)
		meds := make([]*models.Medicine, len(req.Lines))
		allOK := true
		for i, line := range req.Lines {
			med, err := d.MedicineByID(line.MedID)
			if err != nil {
				return err
			}
			meds[i] = med
			if _, seen := remaining[med.ID]; !seen {
				remaining[med.ID] = med.Qty
			}
			res := validateSaleLine(med, line.Qty, remaining[med.ID], line.Rx)
			if res.OK {
				remaining[med.ID] -= line.Qty
			} else {
				allOK = false
			}
			outcome.Lines = append(outcome.Lines, res)
		}
		if !allOK {
			return errRejected
		}

		// Apply: decrement stock, append sales, advance last purchase.
		saleDate := s.now()
		for i, line := range req.Lines {
			med := meds[i]
			med.Qty -= line.Qty
			unitPrice := med.Price
			sale := models.Sale{
				ID:         s.newID(),
				Date:       saleDate,
				MedID:      med.ID,
				Qty:        line.Qty,
				Total:      round2(float64(line.Qty) * unitPrice),
				UnitPrice:  unitPrice,
				Rx:         outcome.Lines[i].rx,
				CustomerID: req.CustomerID,
			}
			d.Sales = append(d.Sales, sale)
			outcome.Sales = append(outcome.Sales, sale)
		}
		if customer != nil {
			t := saleDate
			customer.LastPurchase = &t
		}
		outcome.Accepted = true
		return nil
	})

	if err != nil {
		if errors.Is(err, errRejected) {
			return outcome, nil
		}
		return nil, err
	}
	return outcome, nil
}

// GetSales returns recorded sales, newest first.
func (s *saleService) GetSales() []models.Sale {
	var sales []models.Sale
	s.st.View(func(d *store.Data) {
		sales = make([]models.Sale, 0, len(d.Sales))
		for i := len(d.Sales) - 1; i >= 0; i-- {
			sales = append(sales, d.Sales[i])
		}
	})
	return sales
}
