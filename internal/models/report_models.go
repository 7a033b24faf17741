package models

import "time"

// AuditVersion tags exported audit bundles so external report generators can
// detect the layout they were built against.
const AuditVersion = "audit.v3.crm"

// PurchaseReportRow is a purchase line joined with supplier and medicine names.
type PurchaseReportRow struct {
	Date     time.Time `json:"date"`
	Supplier string    `json:"supplier"`
	Med      string    `json:"med"`
	Batch    string    `json:"batch"`
	Qty      int       `json:"qty"`
	Price    float64   `json:"price"`
	Amount   float64   `json:"amount"`
}

// SaleReportRow is a sale joined with medicine, customer and prescription
// details for the audit export.
type SaleReportRow struct {
	Date           time.Time `json:"date"`
	Customer       string    `json:"customer"`
	Phone          string    `json:"phone"`
	Med            string    `json:"med"`
	Batch          string    `json:"batch"`
	Qty            int       `json:"qty"`
	UnitPrice      float64   `json:"unitPrice"`
	Amount         float64   `json:"amount"`
	Schedule       string    `json:"schedule"`
	RxNo           string    `json:"rxNo"`
	Prescriber     string    `json:"prescriber"`
	RegNo          string    `json:"regNo"`
	Patient        string    `json:"patient"`
	PatientAddress string    `json:"patientAddress"`
	RetainedCopy   string    `json:"retainedCopy"`
}

// PendingRxRow is a non-OTC sale whose prescription record is incomplete.
// Message is the chase text ready to forward to the customer; sending it is
// the messaging collaborator's job.
type PendingRxRow struct {
	Date     time.Time `json:"date"`
	Customer string    `json:"customer"`
	Phone    string    `json:"phone"`
	Med      string    `json:"med"`
	Schedule string    `json:"schedule"`
	Missing  string    `json:"missing"`
	Message  string    `json:"message"`
}

// DisposalReportRow is a disposal joined with the medicine name.
type DisposalReportRow struct {
	Date   time.Time `json:"date"`
	Med    string    `json:"med"`
	Batch  string    `json:"batch"`
	Qty    int       `json:"qty"`
	Reason string    `json:"reason"`
}

// GSTReportRow summarizes one GST invoice including tax.
type GSTReportRow struct {
	Date      time.Time `json:"date"`
	InvoiceNo string    `json:"invoiceNo"`
	Items     int       `json:"items"`
	Total     float64   `json:"total"`
}

// CustomerReportRow is the CRM sheet of the audit bundle.
type CustomerReportRow struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Chronic      string `json:"chronic"`
	Conditions   string `json:"conditions"`
	RefillDays   int    `json:"refillDays"`
	LastPurchase string `json:"lastPurchase"`
}

// AuditMeta describes when and for which range a bundle was generated.
type AuditMeta struct {
	GeneratedAt time.Time `json:"generatedAt"`
	RangeFrom   string    `json:"rangeFrom"`
	RangeTo     string    `json:"rangeTo"`
	Version     string    `json:"version"`
}

// AuditBundle is the structured audit export consumed by external report
// generators. File encodings (spreadsheet, PDF) are the consumer's job.
type AuditBundle struct {
	Customers         []CustomerReportRow `json:"customers"`
	Purchases         []PurchaseReportRow `json:"purchases"`
	Sales             []SaleReportRow     `json:"sales"`
	HXSales           []SaleReportRow     `json:"hxSales"`
	PendingRx         []PendingRxRow      `json:"pendingRx"`
	ScheduleXRegister RegisterResult      `json:"scheduleXRegister"`
	Disposals         []DisposalReportRow `json:"disposals"`
	GST               []GSTReportRow      `json:"gst"`
	Meta              AuditMeta           `json:"meta"`
}

// LowStockRow is a medicine at or below the reorder threshold, with the
// suggested reorder quantity.
type LowStockRow struct {
	Medicine  Medicine `json:"medicine"`
	Supplier  string   `json:"supplier"`
	Suggested int      `json:"suggested"`
}

// ExpiryRow is a medicine expiring within the watch window or already expired.
type ExpiryRow struct {
	Medicine Medicine `json:"medicine"`
	DaysLeft int      `json:"daysLeft"`
	Expired  bool     `json:"expired"`
}

// InventorySummary backs the dashboard header cards.
type InventorySummary struct {
	SKUs          int     `json:"skus"`
	TotalUnits    int     `json:"totalUnits"`
	LowStockItems int     `json:"lowStockItems"`
	ExpiringSoon  int     `json:"expiringSoon"`
	ExpiredItems  int     `json:"expiredItems"`
	StockValue    float64 `json:"stockValue"`
	RevenueToday  float64 `json:"revenueToday"`
}

// DueReminderRow is a customer due for a refill within the reminder window.
type DueReminderRow struct {
	Customer Customer  `json:"customer"`
	Due      time.Time `json:"due"`
	Status   string    `json:"status"`
}
