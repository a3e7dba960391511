package domain

import "time"

// IngredientCost is one component of a forecast's unit cost.
type IngredientCost struct {
	Name     string  `json:"name" bson:"name"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	UnitCost float64 `json:"unit_cost" bson:"unit_cost"`
}

// PriceForecast projects profit for a menu item at a given price and volume.
type PriceForecast struct {
	ID              string           `json:"id" bson:"_id"`
	MenuItemID      string           `json:"menu_item_id,omitempty" bson:"menu_item_id,omitempty"`
	ItemName        string           `json:"item_name" bson:"item_name"`
	IngredientCosts []IngredientCost `json:"ingredient_costs" bson:"ingredient_costs"`
	OverheadPerUnit float64          `json:"overhead_per_unit" bson:"overhead_per_unit"`
	SellingPrice    float64          `json:"selling_price" bson:"selling_price"`
	ExpectedUnits   int              `json:"expected_units" bson:"expected_units"`
	UnitCost        float64          `json:"unit_cost" bson:"unit_cost"`
	UnitProfit      float64          `json:"unit_profit" bson:"unit_profit"`
	TotalProfit     float64          `json:"total_profit" bson:"total_profit"`
	MarginPercent   float64          `json:"margin_percent" bson:"margin_percent"`
	CreatedBy       string           `json:"created_by" bson:"created_by"`
	OutletID        string           `json:"outlet_id" bson:"outlet_id"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
}

// Compute fills the derived profit fields.
func (f *PriceForecast) Compute() {
	var cost float64
	for _, ic := range f.IngredientCosts {
		cost += ic.Quantity * ic.UnitCost
	}
	f.UnitCost = round2(cost + f.OverheadPerUnit)
	f.UnitProfit = round2(f.SellingPrice - f.UnitCost)
	f.TotalProfit = round2(f.UnitProfit * float64(f.ExpectedUnits))
	if f.SellingPrice > 0 {
		f.MarginPercent = round2(f.UnitProfit / f.SellingPrice * 100)
	} else {
		f.MarginPercent = 0
	}
}
