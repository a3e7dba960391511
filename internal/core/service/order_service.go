package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// OrderService takes orders and moves them through the kitchen.
type OrderService struct {
	orders   ports.OrderRepository
	items    ports.MenuRepository
	offers   ports.OfferRepository
	loyalty  *LoyaltyService
	logger   zerolog.Logger
	now      func() time.Time
	onCreate func(*domain.Order)
}

func NewOrderService(orders ports.OrderRepository, items ports.MenuRepository, offers ports.OfferRepository, loyalty *LoyaltyService, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		items:   items,
		offers:  offers,
		loyalty: loyalty,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// OnCreate registers a hook run after an order is stored, used for metrics.
func (s *OrderService) OnCreate(fn func(*domain.Order)) { s.onCreate = fn }

// Create prices the order from the stored menu, applies an optional offer and
// stores it as pending.
func (s *OrderService) Create(ctx context.Context, id domain.Identity, outletID string, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("order must contain at least one item")
	}

	qty := map[string]int{}
	var ids []string
	for _, line := range input.Items {
		if line.MenuItemID == "" || line.Quantity <= 0 {
			return nil, domain.NewValidationError("each item needs a menu_item_id and a positive quantity")
		}
		if _, seen := qty[line.MenuItemID]; !seen {
			ids = append(ids, line.MenuItemID)
		}
		qty[line.MenuItemID] += line.Quantity
	}

	menu, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	lines := make([]domain.OrderItem, 0, len(ids))
	for _, itemID := range ids {
		m, ok := byID[itemID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMenuItemNotFound, itemID)
		}
		if m.OutletID != outletID {
			return nil, domain.NewValidationError(fmt.Sprintf("item %s is not sold at this outlet", m.Name))
		}
		if !m.Available {
			return nil, domain.NewValidationError(fmt.Sprintf("item %s is not available", m.Name))
		}
		lines = append(lines, domain.OrderItem{MenuItemID: m.ID, Name: m.Name, Quantity: qty[itemID], UnitPrice: m.Price})
	}

	now := s.now()
	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Username:  id.Username,
		OutletID:  outletID,
		Items:     lines,
		Subtotal:  math.Round(domain.Subtotal(lines)*100) / 100,
		Status:    domain.OrderPending,
		CreatedAt: now,
	}

	var offerID string
	if code := strings.ToUpper(strings.TrimSpace(input.OfferCode)); code != "" {
		offer, err := s.offers.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if offer.OutletID != "" && offer.OutletID != outletID {
			return nil, domain.NewValidationError("offer is not valid at this outlet")
		}
		if !offer.Usable(now, order.Subtotal) {
			return nil, domain.NewValidationError("offer is not applicable to this order")
		}
		if err := s.offers.IncrementUsage(ctx, offer.ID); err != nil {
			return nil, err
		}
		offerID = offer.ID
		order.OfferCode = offer.Code
		order.Discount = offer.DiscountFor(order.Subtotal)
	}
	order.Total = math.Round((order.Subtotal-order.Discount)*100) / 100

	if err := s.orders.Create(ctx, order); err != nil {
		if offerID != "" {
			if rerr := s.offers.ReleaseUsage(ctx, offerID); rerr != nil {
				s.logger.Error().Err(rerr).Str("offer_id", offerID).Msg("failed to release offer usage")
			}
		}
		return nil, err
	}
	s.logger.Info().Str("order_id", order.ID).Str("outlet_id", outletID).Float64("total", order.Total).Msg("order created")
	if s.onCreate != nil {
		s.onCreate(order)
	}
	return order, nil
}

// Get returns an order visible to id: its owner or any staff member.
func (s *OrderService) Get(ctx context.Context, id domain.Identity, orderID string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != id.UserID && !id.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (s *OrderService) ListMine(ctx context.Context, id domain.Identity) ([]*domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) List(ctx context.Context, f ports.ListFilter, status string) ([]*domain.Order, error) {
	if status != "" && !validOrderStatus(domain.OrderStatus(status)) {
		return nil, domain.NewValidationError("unknown order status")
	}
	return s.orders.List(ctx, f, status)
}

// UpdateStatus applies one lifecycle transition. Completing an order awards
// loyalty points to its owner; a failed award is logged and does not undo the
// transition.
func (s *OrderService) UpdateStatus(ctx context.Context, outletID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if !validOrderStatus(next) {
		return nil, domain.NewValidationError("unknown order status")
	}
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if outletID != "" && o.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
	}

	now := s.now()
	stamp := ""
	switch next {
	case domain.OrderPreparing:
		stamp = "prep_started_at"
		o.PrepStartedAt = &now
	case domain.OrderReady:
		stamp = "ready_at"
		o.ReadyAt = &now
	case domain.OrderCompleted:
		stamp = "completed_at"
		o.CompletedAt = &now
	}
	if err := s.orders.UpdateStatus(ctx, o.ID, o.Status, next, stamp, now); err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", o.ID).Str("from", string(o.Status)).Str("to", string(next)).Msg("order status changed")
	o.Status = next

	if next == domain.OrderCompleted {
		s.awardPoints(ctx, o)
	}
	return o, nil
}

func (s *OrderService) awardPoints(ctx context.Context, o *domain.Order) {
	if s.loyalty == nil {
		return
	}
	points, err := s.loyalty.Award(ctx, o)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Str("user_id", o.UserID).Msg("failed to award loyalty points")
		return
	}
	if points == 0 {
		return
	}
	o.PointsAwarded = points
	if err := s.orders.SetPointsAwarded(ctx, o.ID, points); err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
		s.logger.Warn().Err(err).Str("order_id", o.ID).Msg("failed to record awarded points on order")
	}
}

func validOrderStatus(st domain.OrderStatus) bool {
	switch st {
	case domain.OrderPending, domain.OrderConfirmed, domain.OrderPreparing,
		domain.OrderReady, domain.OrderCompleted, domain.OrderCancelled:
		return true
	}
	return false
}
