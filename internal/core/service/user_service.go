package service

import (
	"context"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// UserService covers admin user management.
type UserService struct {
	users   ports.UserRepository
	outlets ports.OutletRepository
}

func NewUserService(users ports.UserRepository, outlets ports.OutletRepository) *UserService {
	return &UserService{users: users, outlets: outlets}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) SetRole(ctx context.Context, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role must be one of: user, manager, admin")
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// SetOutlets replaces the user's assigned outlets; every outlet must exist.
func (s *UserService) SetOutlets(ctx context.Context, id string, outletIDs []string) (*domain.User, error) {
	seen := make(map[string]struct{}, len(outletIDs))
	clean := make([]string, 0, len(outletIDs))
	for _, oid := range outletIDs {
		if _, dup := seen[oid]; dup {
			continue
		}
		if _, err := s.outlets.FindByID(ctx, oid); err != nil {
			return nil, err
		}
		seen[oid] = struct{}{}
		clean = append(clean, oid)
	}
	if err := s.users.SetOutlets(ctx, id, clean); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}
