package domain

import "time"

// LoyaltyAccount holds a customer's point balance.
type LoyaltyAccount struct {
	UserID         string    `json:"user_id" bson:"_id"`
	Points         int       `json:"points" bson:"points"`
	LifetimePoints int       `json:"lifetime_points" bson:"lifetime_points"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// LoyaltyTransaction records a points movement.
type LoyaltyTransaction struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	OrderID   string    `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Points    int       `json:"points" bson:"points"`
	Reason    string    `json:"reason" bson:"reason"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// PointsFor returns the points earned for an order total.
func PointsFor(total, perPoint float64) int {
	if perPoint <= 0 || total <= 0 {
		return 0
	}
	return int(total / perPoint)
}
