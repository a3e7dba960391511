package ports

import (
	"context"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// SaleRepository defines persistence for in-store sales.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) error
	CreateMany(ctx context.Context, sales []*domain.Sale) error
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, f ListFilter) ([]*domain.Sale, error)
	Delete(ctx context.Context, id string) error
	DailyTotals(ctx context.Context, f ListFilter) ([]domain.DayTotal, error)
}

// ExpenseRepository defines persistence for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	CreateMany(ctx context.Context, expenses []*domain.Expense) error
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context, f ListFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
	DailyTotals(ctx context.Context, f ListFilter) ([]domain.DayTotal, error)
	TotalsByType(ctx context.Context, f ListFilter) ([]domain.TypeTotal, error)
}

// OnlineOrderRepository defines persistence for delivery platform orders.
type OnlineOrderRepository interface {
	Create(ctx context.Context, o *domain.OnlineOrder) error
	CreateMany(ctx context.Context, orders []*domain.OnlineOrder) error
	FindByID(ctx context.Context, id string) (*domain.OnlineOrder, error)
	List(ctx context.Context, f ListFilter, platform string) ([]*domain.OnlineOrder, error)
	SetStatus(ctx context.Context, id, status string) error
	DailyPayouts(ctx context.Context, f ListFilter) ([]domain.DayTotal, error)
	SummaryByPlatform(ctx context.Context, f ListFilter) ([]domain.PlatformSummary, error)
}

// ForecastRepository defines persistence for price forecasts.
type ForecastRepository interface {
	Create(ctx context.Context, f *domain.PriceForecast) error
	FindByID(ctx context.Context, id string) (*domain.PriceForecast, error)
	List(ctx context.Context, f ListFilter) ([]*domain.PriceForecast, error)
	Delete(ctx context.Context, id string) error
}

// ReconciliationRepository defines persistence for cash reconciliations.
type ReconciliationRepository interface {
	// Create fails with domain.ErrReconExists when the outlet already has a
	// record for the same day.
	Create(ctx context.Context, r *domain.CashReconciliation) error
	FindByID(ctx context.Context, id string) (*domain.CashReconciliation, error)
	List(ctx context.Context, f ListFilter) ([]*domain.CashReconciliation, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, limit int) ([]*domain.AuditLog, error)
}
