package domain

import (
	"math"
	"time"
)

const (
	PlatformZomato = "zomato"
	PlatformSwiggy = "swiggy"
	PlatformOther  = "other"
)

const (
	OnlinePending  = "pending"
	OnlineSettled  = "settled"
	OnlineDisputed = "disputed"
)

// OnlineOrder is an order received through a delivery platform.
type OnlineOrder struct {
	ID                string    `json:"id" bson:"_id"`
	Platform          string    `json:"platform" bson:"platform"`
	PlatformOrderID   string    `json:"platform_order_id" bson:"platform_order_id"`
	Date              time.Time `json:"date" bson:"date"`
	GrossAmount       float64   `json:"gross_amount" bson:"gross_amount"`
	DiscountPercent   float64   `json:"discount_percent" bson:"discount_percent"`
	CommissionPercent float64   `json:"commission_percent" bson:"commission_percent"`
	DiscountAmount    float64   `json:"discount_amount" bson:"discount_amount"`
	CommissionAmount  float64   `json:"commission_amount" bson:"commission_amount"`
	Payout            float64   `json:"payout" bson:"payout"`
	Status            string    `json:"status" bson:"status"`
	RecordedBy        string    `json:"recorded_by" bson:"recorded_by"`
	OutletID          string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// ComputePayout derives discount, commission and payout from the gross amount.
// Commission is charged on the discounted amount.
func (o *OnlineOrder) ComputePayout() {
	o.DiscountAmount = round2(o.GrossAmount * o.DiscountPercent / 100)
	net := o.GrossAmount - o.DiscountAmount
	o.CommissionAmount = round2(net * o.CommissionPercent / 100)
	o.Payout = round2(net - o.CommissionAmount)
}

// PlatformSummary reconciles online orders for one platform.
type PlatformSummary struct {
	Platform   string  `json:"platform" bson:"_id"`
	Orders     int     `json:"orders" bson:"orders"`
	Gross      float64 `json:"gross" bson:"gross"`
	Discount   float64 `json:"discount" bson:"discount"`
	Commission float64 `json:"commission" bson:"commission"`
	Payout     float64 `json:"payout" bson:"payout"`
	Settled    int     `json:"settled" bson:"settled"`
	Pending    int     `json:"pending" bson:"pending"`
	Disputed   int     `json:"disputed" bson:"disputed"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
