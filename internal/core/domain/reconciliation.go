package domain

import (
	"math"
	"time"
)

const (
	ReconBalanced = "balanced"
	ReconShort    = "short"
	ReconOver     = "over"
)

// CashReconciliation matches expected and counted cash for one outlet-day.
type CashReconciliation struct {
	ID           string    `json:"id" bson:"_id"`
	Date         time.Time `json:"date" bson:"date"`
	OpeningCash  float64   `json:"opening_cash" bson:"opening_cash"`
	CashSales    float64   `json:"cash_sales" bson:"cash_sales"`
	ExpectedCash float64   `json:"expected_cash" bson:"expected_cash"`
	CountedCash  float64   `json:"counted_cash" bson:"counted_cash"`
	Coins        float64   `json:"coins" bson:"coins"`
	OnlineIncome float64   `json:"online_income" bson:"online_income"`
	Difference   float64   `json:"difference" bson:"difference"`
	Status       string    `json:"status" bson:"status"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedBy   string    `json:"recorded_by" bson:"recorded_by"`
	OutletID     string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Reconcile truncates the date to the day and fills expected, difference and status.
func (r *CashReconciliation) Reconcile() {
	r.Date = DayOf(r.Date)
	r.ExpectedCash = round2(r.OpeningCash + r.CashSales)
	r.Difference = round2(r.CountedCash + r.Coins - r.ExpectedCash)
	switch {
	case math.Abs(r.Difference) < 0.01:
		r.Status = ReconBalanced
	case r.Difference < 0:
		r.Status = ReconShort
	default:
		r.Status = ReconOver
	}
}

// DayOf returns midnight UTC of t's calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
