package ports

import (
	"context"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// CategoryRepository defines persistence for menu categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, outletID string) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// MenuRepository defines persistence for menu items.
type MenuRepository interface {
	Create(ctx context.Context, m *domain.MenuItem) error
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.MenuItem, error)
	List(ctx context.Context, outletID, categoryID string, onlyAvailable bool) ([]*domain.MenuItem, error)
	Update(ctx context.Context, m *domain.MenuItem) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}
