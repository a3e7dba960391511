package domain

import "time"

// SaleItem is one line of a recorded sale.
type SaleItem struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  float64 `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Amount    float64 `json:"amount" bson:"amount"`
}

// Sale is a recorded in-store sale.
type Sale struct {
	ID            string     `json:"id" bson:"_id"`
	Date          time.Time  `json:"date" bson:"date"`
	InvoiceNo     string     `json:"invoice_no,omitempty" bson:"invoice_no,omitempty"`
	Items         []SaleItem `json:"items" bson:"items"`
	Total         float64    `json:"total" bson:"total"`
	PaymentMethod string     `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedBy    string     `json:"recorded_by" bson:"recorded_by"`
	OutletID      string     `json:"outlet_id" bson:"outlet_id"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// Recalculate fills item amounts and the sale total.
func (s *Sale) Recalculate() {
	s.Total = 0
	for i := range s.Items {
		s.Items[i].Amount = s.Items[i].Quantity * s.Items[i].UnitPrice
		s.Total += s.Items[i].Amount
	}
}

// DailyIncome is the per-day income view for dashboards.
type DailyIncome struct {
	Date         string  `json:"date"`
	SalesTotal   float64 `json:"sales_total"`
	SalesCount   int     `json:"sales_count"`
	OnlinePayout float64 `json:"online_payout"`
	Expenses     float64 `json:"expenses"`
	Net          float64 `json:"net"`
}

// DayTotal is a single grouped sum keyed by day (YYYY-MM-DD).
type DayTotal struct {
	Day   string  `bson:"_id"`
	Total float64 `bson:"total"`
	Count int     `bson:"count"`
}
