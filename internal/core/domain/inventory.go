package domain

import "time"

// Ingredient is a stocked raw material.
type Ingredient struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Unit         string    `json:"unit" bson:"unit"`
	Quantity     float64   `json:"quantity" bson:"quantity"`
	ReorderLevel float64   `json:"reorder_level" bson:"reorder_level"`
	CostPerUnit  float64   `json:"cost_per_unit" bson:"cost_per_unit"`
	OutletID     string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the ingredient is at or below its reorder level.
func (i *Ingredient) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

const (
	StockIn     = "in"
	StockOut    = "out"
	StockAdjust = "adjust"
)

// StockTransaction records one movement of an ingredient.
type StockTransaction struct {
	ID           string    `json:"id" bson:"_id"`
	IngredientID string    `json:"ingredient_id" bson:"ingredient_id"`
	Type         string    `json:"type" bson:"type"`
	Quantity     float64   `json:"quantity" bson:"quantity"`
	BalanceAfter float64   `json:"balance_after" bson:"balance_after"`
	Reason       string    `json:"reason,omitempty" bson:"reason,omitempty"`
	RecordedBy   string    `json:"recorded_by" bson:"recorded_by"`
	OutletID     string    `json:"outlet_id" bson:"outlet_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
