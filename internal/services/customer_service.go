package services

import (
	"fmt"
	"sort"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/store"

	"github.com/google/uuid"
)

// dueWindowDays is how far ahead the due-reminder list looks.
const dueWindowDays = 3

// CustomerRequest carries the writable customer fields.
type CustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
	Chronic    bool   `json:"chronic"`
	Conditions string `json:"conditions"`
	RefillDays int    `json:"refillDays"`
}

type CustomerService interface {
	CreateCustomer(req CustomerRequest) (*models.Customer, error)
	GetCustomers() []models.Customer
	GetCustomerByID(id string) (*models.Customer, error)
	UpdateCustomer(id string, req CustomerRequest) (*models.Customer, error)
	DeleteCustomer(id string) error
	DueReminders() []models.DueReminderRow
	ComposeReminder(id string) (string, error)
}

type customerService struct {
	st    *store.Store
	now   func() time.Time
	newID func() string
}

// NewCustomerService creates a CustomerService backed by the given store.
func NewCustomerService(st *store.Store) CustomerService {
	return &customerService{st: st, now: time.Now, newID: uuid.NewString}
}

func normalizeRefillDays(days int) int {
	if days == 0 {
		return models.DefaultRefillDays
	}
	if days < models.MinRefillDays {
		return models.MinRefillDays
	}
	return days
}

func (s *customerService) CreateCustomer(req CustomerRequest) (*models.Customer, error) {
	cust := models.Customer{
		ID:         s.newID(),
		Name:       req.Name,
		Phone:      req.Phone,
		Notes:      req.Notes,
		Chronic:    req.Chronic,
		Conditions: req.Conditions,
		RefillDays: normalizeRefillDays(req.RefillDays),
	}
	err := s.st.Update(func(d *store.Data) error {
		d.Customers = append(d.Customers, cust)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (s *customerService) GetCustomers() []models.Customer {
	var custs []models.Customer
	s.st.View(func(d *store.Data) {
		custs = append([]models.Customer(nil), d.Customers...)
	})
	return custs
}

func (s *customerService) GetCustomerByID(id string) (*models.Customer, error) {
	var cust models.Customer
	var lookupErr error
	s.st.View(func(d *store.Data) {
		found, err := d.CustomerByID(id)
		if err != nil {
			lookupErr = err
			return
		}
		cust = *found
	})
	if lookupErr != nil {
		return nil, lookupErr
	}
	return &cust, nil
}

func (s *customerService) UpdateCustomer(id string, req CustomerRequest) (*models.Customer, error) {
	var updated models.Customer
	err := s.st.Update(func(d *store.Data) error {
		cust, err := d.CustomerByID(id)
		if err != nil {
			return err
		}
		cust.Name = req.Name
		cust.Phone = req.Phone
		cust.Notes = req.Notes
		cust.Chronic = req.Chronic
		cust.Conditions = req.Conditions
		cust.RefillDays = normalizeRefillDays(req.RefillDays)
		updated = *cust
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCustomer removes the customer but keeps sales history, detaching
// the customer reference from every sale that pointed at them.
func (s *customerService) DeleteCustomer(id string) error {
	return s.st.Update(func(d *store.Data) error {
		found := false
		for i := range d.Customers {
			if d.Customers[i].ID == id {
				d.Customers = append(d.Customers[:i], d.Customers[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: customer %s", store.ErrNotFound, id)
		}
		for i := range d.Sales {
			if d.Sales[i].CustomerID == id {
				d.Sales[i].CustomerID = ""
			}
		}
		return nil
	})
}

// DueReminders lists customers whose next refill is overdue, due today, or
// due within the next three days, soonest first.
func (s *customerService) DueReminders() []models.DueReminderRow {
	var rows []models.DueReminderRow
	s.st.View(func(d *store.Data) {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		cutoff := today.AddDate(0, 0, dueWindowDays)
		for _, c := range d.Customers {
			due := c.NextRefillDue()
			if due == nil || due.After(cutoff) {
				continue
			}
			rows = append(rows, models.DueReminderRow{
				Customer: c,
				Due:      *due,
				Status:   dueStatus(*due, today),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Due.Before(rows[j].Due)
		})
	})
	return rows
}

func dueStatus(due, today time.Time) string {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case dueDay.Equal(today):
		return "Due today"
	case dueDay.Before(today):
		return fmt.Sprintf("Overdue by %d d", int(today.Sub(dueDay).Hours()/24))
	default:
		return fmt.Sprintf("Due in %d d", int(dueDay.Sub(today).Hours()/24))
	}
}

// ComposeReminder builds the refill reminder text for a customer. Sending
// it (WhatsApp, SMS, email) is the messaging collaborator's job.
func (s *customerService) ComposeReminder(id string) (string, error) {
	cust, err := s.GetCustomerByID(id)
	if err != nil {
		return "", err
	}
	subject := cust.Conditions
	if subject == "" {
		subject = "medicine"
	}
	dueTxt := ""
	if due := cust.NextRefillDue(); due != nil {
		dueTxt = fmt.Sprintf(" around %s", due.Format("02 Jan 2006"))
	}
	return fmt.Sprintf(
		"Hi %s, this is a reminder from your pharmacy about your %s refill%s. Reply to confirm or for home delivery.",
		cust.Name, subject, dueTxt), nil
}
