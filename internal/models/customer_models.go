package models

import "time"

// DefaultRefillDays is the refill cycle applied when a customer record does
// not carry one. MinRefillDays is the floor enforced on every cycle.
const (
	DefaultRefillDays = 30
	MinRefillDays     = 7
)

// Customer represents a pharmacy customer, optionally a chronic patient on a
// refill cycle.
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name" binding:"required"`
	Phone        string     `json:"phone"`
	Notes        string     `json:"notes"`
	Chronic      bool       `json:"chronic"`
	Conditions   string     `json:"conditions"`
	RefillDays   int        `json:"refillDays"`
	LastPurchase *time.Time `json:"lastPurchaseISO,omitempty"`
}

// RefillCycle returns the effective cycle length in days.
func (c *Customer) RefillCycle() int {
	days := c.RefillDays
	if days == 0 {
		days = DefaultRefillDays
	}
	if days < MinRefillDays {
		days = MinRefillDays
	}
	return days
}

// NextRefillDue returns the next refill due date, or nil when the customer
// has no purchase history yet.
func (c *Customer) NextRefillDue() *time.Time {
	if c.LastPurchase == nil {
		return nil
	}
	due := c.LastPurchase.AddDate(0, 0, c.RefillCycle())
	return &due
}
