package models

import "time"

// Register event types, matching the columns of the statutory register.
const (
	RegisterEventReceipt  = "RECEIPT"
	RegisterEventIssue    = "ISSUE"
	RegisterEventDisposal = "DISPOSAL"
)

// RegisterRow is one line of the reconstructed Schedule X register.
// Receipt and Issue are recorded as magnitudes in their own columns, never
// as a net quantity; disposals appear on the issue side tagged DISPOSAL.
type RegisterRow struct {
	Date        time.Time `json:"date"`
	Medicine    string    `json:"medicine"`
	Batch       string    `json:"batch"`
	Type        string    `json:"type"`
	Particulars string    `json:"particulars"`
	Receipt     int       `json:"receipt"`
	Issue       int       `json:"issue"`
	Balance     int       `json:"balance"`
}

// RegisterResult is a reconstructed register plus any data-integrity
// warnings found during the replay. Warnings are surfaced, never raised:
// a negative balance indicates a data-entry fault in the source records.
type RegisterResult struct {
	Rows     []RegisterRow `json:"rows"`
	Warnings []string      `json:"warnings,omitempty"`
}
