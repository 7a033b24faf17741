// Package seed fills an empty store with a realistic sample data set for
// demos and local development.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"pharmacy_backend/internal/models"
	"pharmacy_backend/internal/regulatory"
	"pharmacy_backend/internal/store"

	"github.com/google/uuid"
)

type seedMedicine struct {
	name     string
	schedule regulatory.Schedule
	price    float64
	qty      int
}

var sampleMedicines = []seedMedicine{
	{"Paracetamol 500mg", regulatory.ScheduleOTC, 2.50, 420},
	{"Cetirizine 10mg", regulatory.ScheduleOTC, 3.00, 180},
	{"ORS Sachet", regulatory.ScheduleOTC, 18.00, 95},
	{"Amoxicillin 500mg", regulatory.ScheduleH, 9.50, 140},
	{"Azithromycin 250mg", regulatory.ScheduleH, 14.00, 24},
	{"Metformin 500mg", regulatory.ScheduleH, 4.20, 300},
	{"Tramadol 50mg", regulatory.ScheduleH1, 11.00, 60},
	{"Alprazolam 0.5mg", regulatory.ScheduleX, 6.75, 40},
	{"Zolpidem 10mg", regulatory.ScheduleX, 12.50, 18},
}

var sampleSuppliers = []models.Supplier{
	{Name: "MedLine Distributors", Contact: "+91 98200 11223"},
	{Name: "Apex Pharma Agency", Contact: "+91 90040 55678"},
	{Name: "Sunrise Healthcare", Contact: "+91 98765 43210"},
}

var sampleCustomers = []models.Customer{
	{Name: "Ramesh Iyer", Phone: "+91 98111 22334", Chronic: true, Conditions: "Type 2 diabetes", RefillDays: 30},
	{Name: "Sunita Deshmukh", Phone: "+91 99223 34455", Chronic: true, Conditions: "Hypertension", RefillDays: 30},
	{Name: "Arjun Mehta", Phone: "+91 97334 45566", Chronic: false},
	{Name: "Fatima Khan", Phone: "+91 96445 56677", Chronic: true, Conditions: "Anxiety disorder", RefillDays: 15},
}

// Run populates the store with sample suppliers, customers, medicines and
// roughly six months of purchase and sale history. The caller decides when
// to seed; Run itself refuses a non-empty store.
func Run(st *store.Store, now time.Time) error {
	if !st.Empty() {
		return nil
	}
	rng := rand.New(rand.NewSource(now.UnixNano()))
	return st.Update(func(d *store.Data) error {
		for _, s := range sampleSuppliers {
			s.ID = uuid.NewString()
			d.Suppliers = append(d.Suppliers, s)
		}
		for _, c := range sampleCustomers {
			c.ID = uuid.NewString()
			d.Customers = append(d.Customers, c)
		}
		for i, sm := range sampleMedicines {
			supplier := d.Suppliers[i%len(d.Suppliers)]
			expiry := now.AddDate(0, 3+rng.Intn(18), 0).Format("2006-01-02")
			med := models.Medicine{
				ID:         uuid.NewString(),
				Name:       sm.name,
				Batch:      batchNo(rng),
				SupplierID: supplier.ID,
				Qty:        sm.qty,
				Expiry:     expiry,
				Price:      sm.price,
				Schedule:   sm.schedule,
			}
			d.Medicines = append(d.Medicines, med)
			d.Purchases = append(d.Purchases, models.Purchase{
				Date:       now.AddDate(0, -6, 0),
				SupplierID: supplier.ID,
				Items: []models.PurchaseItem{
					{MedID: med.ID, Batch: med.Batch, Qty: sm.qty, Price: sm.price * 0.7},
				},
			})
		}
		seedSales(d, rng, now)
		return nil
	})
}

// seedSales spreads sales over the past six months. Scheduled medicines get
// a complete prescription so the compliance register replays cleanly.
func seedSales(d *store.Data, rng *rand.Rand, now time.Time) {
	prescribers := []string{"Dr. Nair", "Dr. Kulkarni", "Dr. Bose"}
	for day := 180; day > 0; day -= 1 + rng.Intn(3) {
		date := now.AddDate(0, 0, -day)
		med := &d.Medicines[rng.Intn(len(d.Medicines))]
		qty := 1 + rng.Intn(3)
		if qty > med.Qty {
			continue
		}
		sale := models.Sale{
			ID:        uuid.NewString(),
			Date:      date,
			MedID:     med.ID,
			Qty:       qty,
			UnitPrice: med.Price,
			Total:     float64(qty) * med.Price,
		}
		if med.Schedule != regulatory.ScheduleOTC {
			di := rng.Intn(len(prescribers))
			customer := d.Customers[rng.Intn(len(d.Customers))]
			sale.CustomerID = customer.ID
			sale.Rx = &models.Prescription{
				No:           rxNo(rng),
				Prescriber:   prescribers[di],
				Reg:          regNo(rng),
				Patient:      customer.Name,
				Address:      "On file",
				RetainedCopy: med.Schedule == regulatory.ScheduleX,
			}
			if cust, err := d.CustomerByID(customer.ID); err == nil {
				if cust.LastPurchase == nil || cust.LastPurchase.Before(date) {
					t := date
					cust.LastPurchase = &t
				}
			}
		}
		med.Qty -= qty
		d.Sales = append(d.Sales, sale)
	}
}

const batchChars = "ABCDEFGHJKLMNPQRSTUVWXYZ"

func batchNo(rng *rand.Rand) string {
	a := batchChars[rng.Intn(len(batchChars))]
	b := batchChars[rng.Intn(len(batchChars))]
	return fmt.Sprintf("%c%c%04d", a, b, rng.Intn(10000))
}

func rxNo(rng *rand.Rand) string {
	return fmt.Sprintf("RX-%04d", rng.Intn(10000))
}

func regNo(rng *rand.Rand) string {
	return fmt.Sprintf("MH-%04d", rng.Intn(10000))
}
