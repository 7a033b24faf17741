package services

import (
	"fmt"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/store"

	"github.com/google/uuid"
)

// SupplierRequest carries the writable supplier fields.
type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Notes   string `json:"notes"`
}

type SupplierService interface {
	CreateSupplier(req SupplierRequest) (*models.Supplier, error)
	GetSuppliers() []models.Supplier
	GetSupplierByID(id string) (*models.Supplier, error)
	UpdateSupplier(id string, req SupplierRequest) (*models.Supplier, error)
	DeleteSupplier(id string) error
}

type supplierService struct {
	st    *store.Store
	newID func() string
}

// NewSupplierService creates a SupplierService backed by the given store.
func NewSupplierService(st *store.Store) SupplierService {
	return &supplierService{st: st, newID: uuid.NewString}
}

func (s *supplierService) CreateSupplier(req SupplierRequest) (*models.Supplier, error) {
	sup := models.Supplier{
		ID:      s.newID(),
		Name:    req.Name,
		Contact: req.Contact,
		Notes:   req.Notes,
	}
	err := s.st.Update(func(d *store.Data) error {
		d.Suppliers = append(d.Suppliers, sup)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *supplierService) GetSuppliers() []models.Supplier {
	var sups []models.Supplier
	s.st.View(func(d *store.Data) {
		sups = append([]models.Supplier(nil), d.Suppliers...)
	})
	return sups
}

func (s *supplierService) GetSupplierByID(id string) (*models.Supplier, error) {
	var sup models.Supplier
	var lookupErr error
	s.st.View(func(d *store.Data) {
		found, err := d.SupplierByID(id)
		if err != nil {
			lookupErr = err
			return
		}
		sup = *found
	})
	if lookupErr != nil {
		return nil, lookupErr
	}
	return &sup, nil
}

func (s *supplierService) UpdateSupplier(id string, req SupplierRequest) (*models.Supplier, error) {
	var updated models.Supplier
	err := s.st.Update(func(d *store.Data) error {
		sup, err := d.SupplierByID(id)
		if err != nil {
			return err
		}
		sup.Name = req.Name
		sup.Contact = req.Contact
		sup.Notes = req.Notes
		updated = *sup
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSupplier removes the supplier record only; medicines sourced from
// it keep their (now dangling) reference and reports show a blank name.
func (s *supplierService) DeleteSupplier(id string) error {
	return s.st.Update(func(d *store.Data) error {
		for i := range d.Suppliers {
			if d.Suppliers[i].ID == id {
				d.Suppliers = append(d.Suppliers[:i], d.Suppliers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: supplier %s", store.ErrNotFound, id)
	})
}
