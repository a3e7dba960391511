package domain

import "time"

// Expense is a recorded business expense.
type Expense struct {
	ID            string    `json:"id" bson:"_id"`
	Date          time.Time `json:"date" bson:"date"`
	Type          string    `json:"type" bson:"type"`
	Description   string    `json:"description" bson:"description"`
	Amount        float64   `json:"amount" bson:"amount"`
	Vendor        string    `json:"vendor,omitempty" bson:"vendor,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	InvoiceNo     string    `json:"invoice_no,omitempty" bson:"invoice_no,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by" bson:"recorded_by"`
	OutletID      string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// TypeTotal is a grouped expense sum by type.
type TypeTotal struct {
	Type  string  `json:"type" bson:"_id"`
	Total float64 `json:"total" bson:"total"`
	Count int     `json:"count" bson:"count"`
}
