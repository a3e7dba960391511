package domain

import (
	"math"
	"time"
)

// Offer is a discount code.
type Offer struct {
	ID              string    `json:"id" bson:"_id"`
	Code            string    `json:"code" bson:"code"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	DiscountPercent float64   `json:"discount_percent" bson:"discount_percent"`
	MaxDiscount     float64   `json:"max_discount,omitempty" bson:"max_discount,omitempty"`
	MinOrderAmount  float64   `json:"min_order_amount,omitempty" bson:"min_order_amount,omitempty"`
	MaxUses         int       `json:"max_uses,omitempty" bson:"max_uses,omitempty"`
	UsedCount       int       `json:"used_count" bson:"used_count"`
	ValidFrom       time.Time `json:"valid_from" bson:"valid_from"`
	ValidTo         time.Time `json:"valid_to" bson:"valid_to"`
	Active          bool      `json:"active" bson:"active"`
	OutletID        string    `json:"outlet_id,omitempty" bson:"outlet_id,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// Usable reports whether the offer can be applied at now for an order of amount.
func (o *Offer) Usable(now time.Time, amount float64) bool {
	if !o.Active {
		return false
	}
	if !o.ValidFrom.IsZero() && now.Before(o.ValidFrom) {
		return false
	}
	if !o.ValidTo.IsZero() && now.After(o.ValidTo) {
		return false
	}
	if o.MaxUses > 0 && o.UsedCount >= o.MaxUses {
		return false
	}
	return amount >= o.MinOrderAmount
}

// DiscountFor computes the discount applied to amount, capped by MaxDiscount
// and rounded to two decimals.
func (o *Offer) DiscountFor(amount float64) float64 {
	d := amount * o.DiscountPercent / 100
	if o.MaxDiscount > 0 && d > o.MaxDiscount {
		d = o.MaxDiscount
	}
	return math.Round(d*100) / 100
}
