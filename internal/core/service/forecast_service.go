package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

type ForecastService struct {
	repo  ports.ForecastRepository
	items ports.MenuRepository
}

func NewForecastService(repo ports.ForecastRepository, items ports.MenuRepository) *ForecastService {
	return &ForecastService{repo: repo, items: items}
}

// Create computes and stores a forecast. When a menu item is referenced its
// name fills an empty item name.
func (s *ForecastService) Create(ctx context.Context, outletID, actor string, in ports.ForecastInput) (*domain.PriceForecast, error) {
	name := strings.TrimSpace(in.ItemName)
	if in.MenuItemID != "" {
		m, err := s.items.FindByID(ctx, in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = m.Name
		}
	}
	if name == "" {
		return nil, domain.NewValidationError("item_name or menu_item_id is required")
	}
	if in.SellingPrice < 0 || in.OverheadPerUnit < 0 || in.ExpectedUnits < 0 {
		return nil, domain.NewValidationError("selling_price, overhead_per_unit and expected_units must not be negative")
	}

	f := &domain.PriceForecast{
		ID:              uuid.NewString(),
		MenuItemID:      in.MenuItemID,
		ItemName:        name,
		IngredientCosts: make([]domain.IngredientCost, 0, len(in.IngredientCosts)),
		OverheadPerUnit: in.OverheadPerUnit,
		SellingPrice:    in.SellingPrice,
		ExpectedUnits:   in.ExpectedUnits,
		CreatedBy:       actor,
		OutletID:        outletID,
		CreatedAt:       time.Now().UTC(),
	}
	for _, ic := range in.IngredientCosts {
		if ic.Quantity < 0 || ic.UnitCost < 0 {
			return nil, domain.NewValidationError("ingredient quantity and unit_cost must not be negative")
		}
		f.IngredientCosts = append(f.IngredientCosts, domain.IngredientCost{Name: ic.Name, Quantity: ic.Quantity, UnitCost: ic.UnitCost})
	}
	f.Compute()

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ForecastService) List(ctx context.Context, outletID string) ([]*domain.PriceForecast, error) {
	return s.repo.List(ctx, ports.ListFilter{OutletID: outletID})
}

func (s *ForecastService) Get(ctx context.Context, outletID, id string) (*domain.PriceForecast, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && f.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return f, nil
}

func (s *ForecastService) Delete(ctx context.Context, outletID, id string) error {
	if _, err := s.Get(ctx, outletID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
