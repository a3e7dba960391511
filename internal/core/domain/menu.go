package domain

import "time"

// Category groups menu items.
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	SortOrder   int       `json:"sort_order" bson:"sort_order"`
	OutletID    string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// MenuItem is a sellable product.
type MenuItem struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	Price       float64   `json:"price" bson:"price"`
	Cost        float64   `json:"cost" bson:"cost"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Available   bool      `json:"available" bson:"available"`
	PrepMinutes int       `json:"prep_minutes" bson:"prep_minutes"`
	OutletID    string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ItemPerformance aggregates kitchen preparation time and volume for one menu item.
type ItemPerformance struct {
	MenuItemID    string  `json:"menu_item_id"`
	Name          string  `json:"name"`
	Orders        int     `json:"orders"`
	Quantity      int     `json:"quantity"`
	Revenue       float64 `json:"revenue"`
	AvgKPTMinutes float64 `json:"avg_kpt_minutes"`
	MinKPTMinutes float64 `json:"min_kpt_minutes"`
	MaxKPTMinutes float64 `json:"max_kpt_minutes"`
	TargetMinutes int     `json:"target_minutes"`
	DelayedOrders int     `json:"delayed_orders"`
}
