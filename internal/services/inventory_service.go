package services

import (
	"fmt"
	"sort"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"

	"github.com/google/uuid"
)

// Expiry windows, in days, matching the dashboard views.
const (
	expiryWatchDays = 30
	expirySoonDays  = 14
)

// --- DTOs ---

// MedicineRequest carries the writable medicine fields for create/update.
type MedicineRequest struct {
	Name       string  `json:"name" binding:"required"`
	Batch      string  `json:"batch"`
	SupplierID string  `json:"supplierId"`
	Qty        int     `json:"qty" binding:"gte=0"`
	Expiry     string  `json:"expiry"`
	Rating     int     `json:"rating"`
	Price      float64 `json:"price" binding:"gte=0"`
	Schedule   string  `json:"schedule"`
}

// RestockRequest adds stock for one medicine and records the purchase.
type RestockRequest struct {
	Qty int `json:"qty" binding:"required"`
}

// DisposeRequest removes stock with a reason tag.
type DisposeRequest struct {
	Qty    int    `json:"qty" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// --- InventoryService ---

type InventoryService interface {
	CreateMedicine(req MedicineRequest) (*models.Medicine, error)
	GetMedicines() []models.Medicine
	GetMedicineByID(id string) (*models.Medicine, error)
	UpdateMedicine(id string, req MedicineRequest) (*models.Medicine, error)
	DeleteMedicine(id string) error
	Restock(id string, req RestockRequest) (*models.Purchase, error)
	Dispose(id string, req DisposeRequest) (*models.Disposal, error)
	LowStock() []models.LowStockRow
	Expiring() []models.ExpiryRow
	Summary() models.InventorySummary
	GetSettings() models.Settings
	UpdateSettings(threshold int) (models.Settings, error)
}

type inventoryService struct {
	st    *store.Store
	now   func() time.Time
	newID func() string
}

// NewInventoryService creates an InventoryService backed by the given store.
func NewInventoryService(st *store.Store) InventoryService {
	return &inventoryService{st: st, now: time.Now, newID: uuid.NewString}
}

// scheduleFromRequest maps the request tag to the closed enumeration. An
// absent tag means OTC; anything unrecognized fails closed to Schedule X.
func scheduleFromRequest(raw string) regulatory.Schedule {
	if raw == "" {
		return regulatory.ScheduleOTC
	}
	return regulatory.Normalize(raw)
}

func (s *inventoryService) CreateMedicine(req MedicineRequest) (*models.Medicine, error) {
	med := models.Medicine{
		ID:         s.newID(),
		Name:       req.Name,
		Batch:      req.Batch,
		SupplierID: req.SupplierID,
		Qty:        req.Qty,
		Expiry:     req.Expiry,
		Rating:     req.Rating,
		Price:      req.Price,
		Schedule:   scheduleFromRequest(req.Schedule),
	}
	err := s.st.Update(func(d *store.Data) error {
		if req.SupplierID != "" {
			if _, err := d.SupplierByID(req.SupplierID); err != nil {
				return err
			}
		}
		d.Medicines = append(d.Medicines, med)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *inventoryService) GetMedicines() []models.Medicine {
	var meds []models.Medicine
	s.st.View(func(d *store.Data) {
		meds = append([]models.Medicine(nil), d.Medicines...)
	})
	return meds
}

func (s *inventoryService) GetMedicineByID(id string) (*models.Medicine, error) {
	var med models.Medicine
	var lookupErr error
	s.st.View(func(d *store.Data) {
		m, err := d.MedicineByID(id)
		if err != nil {
			lookupErr = err
			return
		}
		med = *m
	})
	if lookupErr != nil {
		return nil, lookupErr
	}
	return &med, nil
}

func (s *inventoryService) UpdateMedicine(id string, req MedicineRequest) (*models.Medicine, error) {
	var updated models.Medicine
	err := s.st.Update(func(d *store.Data) error {
		med, err := d.MedicineByID(id)
		if err != nil {
			return err
		}
		if req.SupplierID != "" {
			if _, err := d.SupplierByID(req.SupplierID); err != nil {
				return err
			}
		}
		med.Name = req.Name
		med.Batch = req.Batch
		med.SupplierID = req.SupplierID
		med.Qty = req.Qty
		med.Expiry = req.Expiry
		med.Rating = req.Rating
		med.Price = req.Price
		med.Schedule = scheduleFromRequest(req.Schedule)
		updated = *med
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMedicine removes the record. Sales history referencing it is kept;
// reports render a deleted marker for dangling references.
func (s *inventoryService) DeleteMedicine(id string) error {
	return s.st.Update(func(d *store.Data) error {
		for i := range d.Medicines {
			if d.Medicines[i].ID == id {
				d.Medicines = append(d.Medicines[:i], d.Medicines[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: medicine %s", store.ErrNotFound, id)
	})
}

// Restock increases stock and appends the corresponding purchase record, as
// one transaction.
func (s *inventoryService) Restock(id string, req RestockRequest) (*models.Purchase, error) {
	if req.Qty <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", ErrValidation)
	}
	var purchase models.Purchase
	err := s.st.Update(func(d *store.Data) error {
		med, err := d.MedicineByID(id)
		if err != nil {
			return err
		}
		med.Qty += req.Qty
		purchase = models.Purchase{
			Date:       s.now(),
			SupplierID: med.SupplierID,
			Items: []models.PurchaseItem{
				{MedID: med.ID, Batch: med.Batch, Qty: req.Qty, Price: med.Price},
			},
		}
		d.Purchases = append(d.Purchases, purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Dispose decreases stock and appends the disposal record, as one
// transaction. Stock can never go negative.
func (s *inventoryService) Dispose(id string, req DisposeRequest) (*models.Disposal, error) {
	if req.Qty <= 0 {
		return nil, fmt.Errorf("%w: disposal quantity must be positive", ErrValidation)
	}
	var disposal models.Disposal
	err := s.st.Update(func(d *store.Data) error {
		med, err := d.MedicineByID(id)
		if err != nil {
			return err
		}
		if req.Qty > med.Qty {
			return fmt.Errorf("%w: disposal quantity %d exceeds stock %d for %s",
				ErrValidation, req.Qty, med.Qty, med.Name)
		}
		med.Qty -= req.Qty
		disposal = models.Disposal{
			Date:   s.now(),
			MedID:  med.ID,
			Batch:  med.Batch,
			Qty:    req.Qty,
			Reason: req.Reason,
		}
		d.Disposals = append(d.Disposals, disposal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &disposal, nil
}

func (s *inventoryService) LowStock() []models.LowStockRow {
	var rows []models.LowStockRow
	s.st.View(func(d *store.Data) {
		threshold := d.Settings.LowStockThreshold
		supplierName := supplierIndex(d)
		for _, m := range d.Medicines {
			if m.Qty > threshold {
				continue
			}
			suggested := threshold*2 - m.Qty
			if suggested < threshold {
				suggested = threshold
			}
			rows = append(rows, models.LowStockRow{
				Medicine:  m,
				Supplier:  supplierName[m.SupplierID],
				Suggested: suggested,
			})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Medicine.Qty < rows[j].Medicine.Qty
		})
	})
	return rows
}

func (s *inventoryService) Expiring() []models.ExpiryRow {
	var rows []models.ExpiryRow
	s.st.View(func(d *store.Data) {
		now := s.now()
		for _, m := range d.Medicines {
			days, ok := m.DaysUntilExpiry(now)
			if !ok || days > expiryWatchDays {
				continue
			}
			rows = append(rows, models.ExpiryRow{Medicine: m, DaysLeft: days, Expired: days < 0})
		}
		// Expired entries first, then soonest expiry.
		sort.SliceStable(rows, func(i, j int) bool {
			return sortKeyExpiry(rows[i]) < sortKeyExpiry(rows[j])
		})
	})
	return rows
}

func sortKeyExpiry(r models.ExpiryRow) int {
	if r.Expired {
		return -9999
	}
	return r.DaysLeft
}

func (s *inventoryService) Summary() models.InventorySummary {
	var sum models.InventorySummary
	s.st.View(func(d *store.Data) {
		now := s.now()
		sum.SKUs = len(d.Medicines)
		for _, m := range d.Medicines {
			sum.TotalUnits += m.Qty
			sum.StockValue += float64(m.Qty) * m.Price
			if m.Qty <= d.Settings.LowStockThreshold {
				sum.LowStockItems++
			}
			if days, ok := m.DaysUntilExpiry(now); ok {
				if days < 0 {
					sum.ExpiredItems++
				} else if days <= expirySoonDays {
					sum.ExpiringSoon++
				}
			}
		}
		today := now.Format("2006-01-02")
		for _, sale := range d.Sales {
			if sale.Date.Format("2006-01-02") == today {
				sum.RevenueToday += sale.Total
			}
		}
		sum.StockValue = round2(sum.StockValue)
		sum.RevenueToday = round2(sum.RevenueToday)
	})
	return sum
}

func (s *inventoryService) GetSettings() models.Settings {
	var settings models.Settings
	s.st.View(func(d *store.Data) {
		settings = d.Settings
	})
	return settings
}

func (s *inventoryService) UpdateSettings(threshold int) (models.Settings, error) {
	if threshold < 1 {
		return models.Settings{}, fmt.Errorf("%w: low-stock threshold must be at least 1", ErrValidation)
	}
	var settings models.Settings
	err := s.st.Update(func(d *store.Data) error {
		d.Settings.LowStockThreshold = threshold
		settings = d.Settings
		return nil
	})
	return settings, err
}

func supplierIndex(d *store.Data) map[string]string {
	idx := make(map[string]string, len(d.Suppliers))
	for _, sup := range d.Suppliers {
		idx[sup.ID] = sup.Name
	}
	return idx
}
