package ports

import (
	"context"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetRole(ctx context.Context, id, role string) error
	SetOutlets(ctx context.Context, id string, outletIDs []string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// OutletRepository defines persistence for outlets.
type OutletRepository interface {
	Create(ctx context.Context, o *domain.Outlet) error
	FindByID(ctx context.Context, id string) (*domain.Outlet, error)
	List(ctx context.Context) ([]*domain.Outlet, error)
	Update(ctx context.Context, o *domain.Outlet) error
}

// LoginLimiter tracks failed login attempts per username.
type LoginLimiter interface {
	Blocked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
