package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is one line of an order.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id" bson:"menu_item_id"`
	Name       string  `json:"name" bson:"name"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
}

// Order is a customer order taken at an outlet.
type Order struct {
	ID            string      `json:"id" bson:"_id"`
	UserID        string      `json:"user_id" bson:"user_id"`
	Username      string      `json:"username" bson:"username"`
	OutletID      string      `json:"outlet_id" bson:"outlet_id"`
	Items         []OrderItem `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	Discount      float64     `json:"discount" bson:"discount"`
	Total         float64     `json:"total" bson:"total"`
	OfferCode     string      `json:"offer_code,omitempty" bson:"offer_code,omitempty"`
	Status        OrderStatus `json:"status" bson:"status"`
	PointsAwarded int         `json:"points_awarded" bson:"points_awarded"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	PrepStartedAt *time.Time  `json:"prep_started_at,omitempty" bson:"prep_started_at,omitempty"`
	ReadyAt       *time.Time  `json:"ready_at,omitempty" bson:"ready_at,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// Subtotal sums quantity × unit price over items.
func Subtotal(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// KPTMinutes returns the kitchen preparation time in minutes, or false when the
// order has not been through both the preparing and ready states.
func (o *Order) KPTMinutes() (float64, bool) {
	if o.PrepStartedAt == nil || o.ReadyAt == nil {
		return 0, false
	}
	d := o.ReadyAt.Sub(*o.PrepStartedAt)
	if d < 0 {
		return 0, false
	}
	return d.Minutes(), true
}
