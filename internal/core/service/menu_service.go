package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// MenuService manages categories and menu items.
type MenuService struct {
	categories ports.CategoryRepository
	items      ports.MenuRepository
	orders     ports.OrderRepository
}

func NewMenuService(categories ports.CategoryRepository, items ports.MenuRepository, orders ports.OrderRepository) *MenuService {
	return &MenuService{categories: categories, items: items, orders: orders}
}

func (s *MenuService) ListCategories(ctx context.Context, outletID string) ([]*domain.Category, error) {
	return s.categories.List(ctx, outletID)
}

func (s *MenuService) CreateCategory(ctx context.Context, outletID string, in ports.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	c := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		OutletID:    outletID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, outletID, id string, in ports.CategoryInput) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.Description = in.Description
	c.SortOrder = in.SortOrder
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, outletID, id string) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.OutletID != outletID {
		return domain.ErrOutletForbidden
	}
	return s.categories.Delete(ctx, id)
}

// ListItems returns menu items; an empty outletID lists every outlet.
func (s *MenuService) ListItems(ctx context.Context, outletID, categoryID string, onlyAvailable bool) ([]*domain.MenuItem, error) {
	return s.items.List(ctx, outletID, categoryID, onlyAvailable)
}

func (s *MenuService) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, outletID string, in ports.MenuItemInput) (*domain.MenuItem, error) {
	if err := s.validateItem(ctx, outletID, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	m := &domain.MenuItem{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		Description: in.Description,
		Available:   available,
		PrepMinutes: in.PrepMinutes,
		OutletID:    outletID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.items.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, outletID, id string, in ports.MenuItemInput) (*domain.MenuItem, error) {
	m, err := s.ownedItem(ctx, outletID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateItem(ctx, outletID, in); err != nil {
		return nil, err
	}
	m.Name = strings.TrimSpace(in.Name)
	m.CategoryID = in.CategoryID
	m.Price = in.Price
	m.Cost = in.Cost
	m.Description = in.Description
	m.PrepMinutes = in.PrepMinutes
	if in.Available != nil {
		m.Available = *in.Available
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, outletID, id string, available bool) error {
	if _, err := s.ownedItem(ctx, outletID, id); err != nil {
		return err
	}
	return s.items.SetAvailability(ctx, id, available)
}

func (s *MenuService) DeleteItem(ctx context.Context, outletID, id string) error {
	if _, err := s.ownedItem(ctx, outletID, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

func (s *MenuService) ownedItem(ctx context.Context, outletID, id string) (*domain.MenuItem, error) {
	m, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return m, nil
}

func (s *MenuService) validateItem(ctx context.Context, outletID string, in ports.MenuItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name is required")
	}
	if in.Price <= 0 {
		return domain.NewValidationError("price must be greater than 0")
	}
	if in.Cost < 0 || in.PrepMinutes < 0 {
		return domain.NewValidationError("cost and prep_minutes must not be negative")
	}
	if in.CategoryID == "" {
		return domain.NewValidationError("category_id is required")
	}
	c, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if c.OutletID != outletID {
		return domain.NewValidationError("category belongs to another outlet")
	}
	return nil
}

// Performance computes per-item KPT statistics over orders that went through
// the kitchen in the filter window.
func (s *MenuService) Performance(ctx context.Context, f ports.ListFilter) ([]domain.ItemPerformance, error) {
	orders, err := s.orders.List(ctx, f, "")
	if err != nil {
		return nil, err
	}

	type acc struct {
		perf   domain.ItemPerformance
		kptSum float64
		kptN   int
	}
	byItem := map[string]*acc{}
	var ids []string

	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			continue
		}
		kpt, hasKPT := o.KPTMinutes()
		for _, it := range o.Items {
			a, ok := byItem[it.MenuItemID]
			if !ok {
				a = &acc{perf: domain.ItemPerformance{MenuItemID: it.MenuItemID, Name: it.Name, MinKPTMinutes: math.MaxFloat64}}
				byItem[it.MenuItemID] = a
				ids = append(ids, it.MenuItemID)
			}
			a.perf.Orders++
			a.perf.Quantity += it.Quantity
			a.perf.Revenue += float64(it.Quantity) * it.UnitPrice
			if hasKPT {
				a.kptSum += kpt
				a.kptN++
				a.perf.MinKPTMinutes = math.Min(a.perf.MinKPTMinutes, kpt)
				a.perf.MaxKPTMinutes = math.Max(a.perf.MaxKPTMinutes, kpt)
			}
		}
	}

	targets := map[string]int{}
	if len(ids) > 0 {
		items, err := s.items.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range items {
			targets[m.ID] = m.PrepMinutes
		}
	}

	// delayed counts need the target, so walk the orders a second time
	for _, o := range orders {
		kpt, ok := o.KPTMinutes()
		if !ok || o.Status == domain.OrderCancelled {
			continue
		}
		for _, it := range o.Items {
			if target := targets[it.MenuItemID]; target > 0 && kpt > float64(target) {
				byItem[it.MenuItemID].perf.DelayedOrders++
			}
		}
	}

	out := make([]domain.ItemPerformance, 0, len(byItem))
	for _, id := range ids {
		a := byItem[id]
		a.perf.TargetMinutes = targets[id]
		if a.kptN > 0 {
			a.perf.AvgKPTMinutes = math.Round(a.kptSum/float64(a.kptN)*100) / 100
		} else {
			a.perf.MinKPTMinutes = 0
		}
		a.perf.Revenue = math.Round(a.perf.Revenue*100) / 100
		out = append(out, a.perf)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out, nil
}
