package scheduler

import (
	"fmt"
	"time"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/go-co-op/gocron"
)

// RefillScanner runs a daily scan over the customer base and logs the
// refill reminders that are due. Actual delivery (SMS, WhatsApp) stays
// manual; the scan gives the operator a morning worklist.
type RefillScanner struct {
	customerService services.CustomerService
	scheduler       *gocron.Scheduler
	hour            int
}

// NewRefillScanner creates a scanner that fires daily at the given hour
// (local time, 0-23).
func NewRefillScanner(customerService services.CustomerService, hour int) *RefillScanner {
	if hour < 0 || hour > 23 {
		hour = 8
	}
	return &RefillScanner{
		customerService: customerService,
		scheduler:       gocron.NewScheduler(time.Local),
		hour:            hour,
	}
}

// Start registers the daily job and starts the scheduler without
// blocking the caller.
func (r *RefillScanner) Start() error {
	at := fmt.Sprintf("%02d:00", r.hour)
	_, err := r.scheduler.Every(1).Day().At(at).Do(r.Scan)
	if err != nil {
		return fmt.Errorf("failed to schedule refill scan: %w", err)
	}
	r.scheduler.StartAsync()
	utils.LogInfo("Refill reminder scan scheduled", map[string]interface{}{"at": at})
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (r *RefillScanner) Stop() {
	r.scheduler.Stop()
}

// Scan logs every customer whose refill is due within the reminder
// window, with the composed message ready to forward.
func (r *RefillScanner) Scan() {
	due := r.customerService.DueReminders()
	utils.LogInfo("Refill reminder scan completed", map[string]interface{}{"due": len(due)})
	for _, row := range due {
		msg, err := r.customerService.ComposeReminder(row.Customer.ID)
		if err != nil {
			// Customer removed between the listing and the compose call.
			continue
		}
		utils.LogInfo("Refill reminder due", map[string]interface{}{
			"customer": row.Customer.Name,
			"phone":    row.Customer.Phone,
			"status":   row.Status,
			"message":  msg,
		})
	}
}
