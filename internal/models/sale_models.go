package models

import "time"

// Prescription holds the particulars captured with a schedule H/H1/X sale.
// JSON keys match the persisted snapshot layout.
type Prescription struct {
	No           string `json:"no"`
	Prescriber   string `json:"doctor"`
	Reg          string `json:"reg"`
	Patient      string `json:"patient"`
	Address      string `json:"address"`
	RetainedCopy bool   `json:"retainedCopy"`
}

// Sale is one recorded sale line. Immutable once created, except that the
// customer reference is detached when the customer is deleted.
type Sale struct {
	ID         string        `json:"id"`
	Date       time.Time     `json:"date"`
	MedID      string        `json:"medId"`
	Qty        int           `json:"qty"`
	Total      float64       `json:"total"`
	UnitPrice  float64       `json:"unitPrice"`
	Rx         *Prescription `json:"rx,omitempty"`
	CustomerID string        `json:"customerId,omitempty"`
}

// PurchaseItem is one line of a supplier purchase.
type PurchaseItem struct {
	MedID string  `json:"medId"`
	Batch string  `json:"batch"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// Purchase records stock received from a supplier.
type Purchase struct {
	Date       time.Time      `json:"date"`
	SupplierID string         `json:"supplierId"`
	Items      []PurchaseItem `json:"items"`
}

// Disposal records stock destroyed or written off.
type Disposal struct {
	Date   time.Time `json:"date"`
	MedID  string    `json:"medId"`
	Batch  string    `json:"batch"`
	Qty    int       `json:"qty"`
	Reason string    `json:"reason"`
}

// GSTInvoiceItem is one taxed line of a GST invoice.
type GSTInvoiceItem struct {
	MedID      string  `json:"medId"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	GSTPercent float64 `json:"gstPercent"`
}

// GSTInvoice is a tax invoice kept alongside sales for the GST audit sheet.
type GSTInvoice struct {
	Date      time.Time        `json:"date"`
	InvoiceNo string           `json:"invoiceNo"`
	Items     []GSTInvoiceItem `json:"items"`
}

// Settings holds operator-tunable knobs persisted with the snapshot.
type Settings struct {
	LowStockThreshold int `json:"lowStockThreshold"`
}

// DefaultLowStockThreshold applies when a snapshot carries no settings.
const DefaultLowStockThreshold = 30
