package ports

import (
	"context"
	"time"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	List(ctx context.Context, f ListFilter, status string) ([]*domain.Order, error)
	// UpdateStatus sets status only when the stored status still equals from,
	// stamping the timestamp field when non-empty.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, stampField string, at time.Time) error
	SetPointsAwarded(ctx context.Context, id string, points int) error
}

// OfferRepository defines persistence for offers.
type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	FindByCode(ctx context.Context, code string) (*domain.Offer, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Offer, error)
	Update(ctx context.Context, o *domain.Offer) error
	Delete(ctx context.Context, id string) error
	// IncrementUsage atomically bumps used_count while it is below max_uses.
	IncrementUsage(ctx context.Context, id string) error
	// ReleaseUsage gives back one use taken by IncrementUsage.
	ReleaseUsage(ctx context.Context, id string) error
}

// LoyaltyRepository defines persistence for loyalty balances.
type LoyaltyRepository interface {
	FindAccount(ctx context.Context, userID string) (*domain.LoyaltyAccount, error)
	// AddPoints atomically adds delta (may be negative) to the balance. A
	// negative delta fails with domain.ErrInsufficientPoints when the balance
	// would go below zero.
	AddPoints(ctx context.Context, userID string, delta int) (*domain.LoyaltyAccount, error)
	InsertTransaction(ctx context.Context, tx *domain.LoyaltyTransaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]*domain.LoyaltyTransaction, error)
}
