package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// OutletService manages outlets.
type OutletService struct {
	repo ports.OutletRepository
}

func NewOutletService(repo ports.OutletRepository) *OutletService {
	return &OutletService{repo: repo}
}

func (s *OutletService) Create(ctx context.Context, name, code, address string) (*domain.Outlet, error) {
	o := &domain.Outlet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Address:   address,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if o.Name == "" || o.Code == "" {
		return nil, domain.NewValidationError("name and code are required")
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OutletService) List(ctx context.Context) ([]*domain.Outlet, error) {
	return s.repo.List(ctx)
}

func (s *OutletService) Update(ctx context.Context, id, name, address string, active *bool) (*domain.Outlet, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		o.Name = strings.TrimSpace(name)
	}
	if address != "" {
		o.Address = address
	}
	if active != nil {
		o.Active = *active
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Deactivate marks the outlet inactive; records scoped to it are kept.
func (s *OutletService) Deactivate(ctx context.Context, id string) error {
	inactive := false
	_, err := s.Update(ctx, id, "", "", &inactive)
	return err
}
