package ports

import (
	"context"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// IngredientRepository defines persistence for stocked ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, i *domain.Ingredient) error
	FindByID(ctx context.Context, id string) (*domain.Ingredient, error)
	List(ctx context.Context, outletID string) ([]*domain.Ingredient, error)
	ListLowStock(ctx context.Context, outletID string) ([]*domain.Ingredient, error)
	Update(ctx context.Context, i *domain.Ingredient) error
	Delete(ctx context.Context, id string) error
	// AdjustQuantity atomically adds delta to the quantity and returns the
	// updated document. Negative deltas fail with domain.ErrInsufficientStock
	// when the stock would go below zero.
	AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.Ingredient, error)
	InsertTransaction(ctx context.Context, tx *domain.StockTransaction) error
	ListTransactions(ctx context.Context, ingredientID string, limit int) ([]*domain.StockTransaction, error)
}
