package ports

import "time"

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
	SortOrder   int
}

// MenuItemInput carries the writable fields of a menu item.
type MenuItemInput struct {
	Name        string
	CategoryID  string
	Price       float64
	Cost        float64
	Description string
	Available   *bool
	PrepMinutes int
}

type OrderLineInput struct {
	MenuItemID string
	Quantity   int
}

// CreateOrderInput is a customer order request.
type CreateOrderInput struct {
	Items     []OrderLineInput
	OfferCode string
}

type IngredientInput struct {
	Name         string
	Unit         string
	Quantity     float64
	ReorderLevel float64
	CostPerUnit  float64
}

// StockMovementInput moves stock in or out of an ingredient.
type StockMovementInput struct {
	Quantity float64
	Reason   string
}

type SaleItemInput struct {
	Name      string
	Quantity  float64
	UnitPrice float64
}

type SaleInput struct {
	Date          time.Time
	InvoiceNo     string
	Items         []SaleItemInput
	PaymentMethod string
	Notes         string
}

type ExpenseInput struct {
	Date          time.Time
	Type          string
	Description   string
	Amount        float64
	Vendor        string
	PaymentMethod string
	InvoiceNo     string
	Notes         string
}

// OfferInput carries the writable fields of an offer.
type OfferInput struct {
	Code            string
	Description     string
	DiscountPercent float64
	MaxDiscount     float64
	MinOrderAmount  float64
	MaxUses         int
	ValidFrom       time.Time
	ValidTo         time.Time
	Active          *bool
}

type OnlineOrderInput struct {
	Platform          string
	PlatformOrderID   string
	Date              time.Time
	GrossAmount       float64
	DiscountPercent   float64
	CommissionPercent float64
}

type IngredientCostInput struct {
	Name     string
	Quantity float64
	UnitCost float64
}

type ForecastInput struct {
	MenuItemID      string
	ItemName        string
	IngredientCosts []IngredientCostInput
	OverheadPerUnit float64
	SellingPrice    float64
	ExpectedUnits   int
}

type ReconciliationInput struct {
	Date         time.Time
	OpeningCash  float64
	CashSales    float64
	CountedCash  float64
	Coins        float64
	OnlineIncome float64
	Notes        string
}

// ImportFile is an uploaded spreadsheet handed to an import operation.
type ImportFile struct {
	Filename string
	Content  []byte
}

// ImportSummary is returned by every bulk import.
type ImportSummary struct {
	Imported  int              `json:"imported"`
	Processed int              `json:"processed"`
	Total     float64          `json:"total"`
	Errors    []ImportRowIssue `json:"errors"`
	Archived  bool             `json:"archived"`
}

type ImportRowIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
