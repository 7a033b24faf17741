package services

import (
	"fmt"
	"sort"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"
)

// RegisterService reconstructs the Schedule X register on demand. The
// source events (purchases, sales, disposals) are the durable truth; the
// register is a derived view, so replaying them avoids a second mutable
// ledger that could drift out of sync.
type RegisterService interface {
	BuildScheduleXRegister() models.RegisterResult
}

type registerService struct {
	st *store.Store
}

// NewRegisterService creates a RegisterService backed by the given store.
func NewRegisterService(st *store.Store) RegisterService {
	return &registerService{st: st}
}

// ledgerEvent is the single variant type the three source collections are
// folded into before sorting and reduction. Receipt and issue are
// magnitudes; a disposal is an issue-side quantity tagged DISPOSAL.
type ledgerEvent struct {
	date        time.Time
	medID       string
	batch       string
	kind        string
	particulars string
	receipt     int
	issue       int
}

func (s *registerService) BuildScheduleXRegister() models.RegisterResult {
	var result models.RegisterResult
	s.st.View(func(d *store.Data) {
		medByID := make(map[string]*models.Medicine, len(d.Medicines))
		for i := range d.Medicines {
			medByID[d.Medicines[i].ID] = &d.Medicines[i]
		}
		supplierName := supplierIndex(d)

		isScheduleX := func(medID string) (*models.Medicine, bool) {
			med, ok := medByID[medID]
			return med, ok && med.Schedule == regulatory.ScheduleX
		}

		var events []ledgerEvent
		for _, p := range d.Purchases {
			for _, it := range p.Items {
				if _, ok := isScheduleX(it.MedID); !ok {
					continue
				}
				name := supplierName[p.SupplierID]
				if name == "" {
					name = p.SupplierID
				}
				events = append(events, ledgerEvent{
					date:        p.Date,
					medID:       it.MedID,
					batch:       it.Batch,
					kind:        models.RegisterEventReceipt,
					particulars: fmt.Sprintf("From supplier %s", name),
					receipt:     it.Qty,
				})
			}
		}
		for _, sale := range d.Sales {
			med, ok := isScheduleX(sale.MedID)
			if !ok {
				continue
			}
			rx := sale.Rx
			if rx == nil {
				rx = &models.Prescription{}
			}
			events = append(events, ledgerEvent{
				date:  sale.Date,
				medID: sale.MedID,
				batch: med.Batch,
				kind:  models.RegisterEventIssue,
				particulars: fmt.Sprintf("To %s (Rx %s; Dr %s/%s)",
					rx.Patient, rx.No, rx.Prescriber, rx.Reg),
				issue: sale.Qty,
			})
		}
		for _, disp := range d.Disposals {
			if _, ok := isScheduleX(disp.MedID); !ok {
				continue
			}
			events = append(events, ledgerEvent{
				date:        disp.Date,
				medID:       disp.MedID,
				batch:       disp.Batch,
				kind:        models.RegisterEventDisposal,
				particulars: fmt.Sprintf("Disposed (%s)", disp.Reason),
				issue:       disp.Qty,
			})
		}

		// Chronological order; ties keep source order. Source events carry
		// no sub-timestamp sequence number, so the stable sort is the only
		// defined tiebreak.
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].date.Before(events[j].date)
		})

		balances := make(map[string]int)
		result.Rows = make([]models.RegisterRow, 0, len(events))
		for _, ev := range events {
			key := ev.medID + "|" + ev.batch
			bal := balances[key] + ev.receipt - ev.issue
			balances[key] = bal

			name := ev.medID
			batch := ev.batch
			if med, ok := medByID[ev.medID]; ok {
				name = med.Name
				if batch == "" {
					batch = med.Batch
				}
			}
			result.Rows = append(result.Rows, models.RegisterRow{
				Date:        ev.date,
				Medicine:    name,
				Batch:       batch,
				Type:        ev.kind,
				Particulars: ev.particulars,
				Receipt:     ev.receipt,
				Issue:       ev.issue,
				Balance:     bal,
			})
			// A negative balance means the source records are inconsistent
			// (a data-entry fault). It is reported, never clamped.
			if bal < 0 {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"negative balance %d for %s batch %s at %s",
					bal, name, batch, ev.date.Format(time.RFC3339)))
			}
		}
	})
	return result
}
