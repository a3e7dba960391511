package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

type InventoryService struct {
	repo   ports.IngredientRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.IngredientRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) List(ctx context.Context, outletID string) ([]*domain.Ingredient, error) {
	return s.repo.List(ctx, outletID)
}

func (s *InventoryService) LowStock(ctx context.Context, outletID string) ([]*domain.Ingredient, error) {
	return s.repo.ListLowStock(ctx, outletID)
}

func (s *InventoryService) Get(ctx context.Context, outletID, id string) (*domain.Ingredient, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && ing.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return ing, nil
}

func (s *InventoryService) Create(ctx context.Context, outletID string, in ports.IngredientInput) (*domain.Ingredient, error) {
	if err := validateIngredient(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ing := &domain.Ingredient{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Unit:         strings.TrimSpace(in.Unit),
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		CostPerUnit:  in.CostPerUnit,
		OutletID:     outletID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Update changes descriptive fields. Quantity only moves through stock operations.
func (s *InventoryService) Update(ctx context.Context, outletID, id string, in ports.IngredientInput) (*domain.Ingredient, error) {
	ing, err := s.Get(ctx, outletID, id)
	if err != nil {
		return nil, err
	}
	in.Quantity = 0
	if err := validateIngredient(in); err != nil {
		return nil, err
	}
	ing.Name = strings.TrimSpace(in.Name)
	ing.Unit = strings.TrimSpace(in.Unit)
	ing.ReorderLevel = in.ReorderLevel
	ing.CostPerUnit = in.CostPerUnit
	ing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *InventoryService) Delete(ctx context.Context, outletID, id string) error {
	if _, err := s.Get(ctx, outletID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *InventoryService) StockIn(ctx context.Context, outletID, id, actor string, in ports.StockMovementInput) (*domain.Ingredient, error) {
	return s.move(ctx, outletID, id, actor, domain.StockIn, in)
}

// StockOut fails with domain.ErrInsufficientStock when the balance would go negative.
func (s *InventoryService) StockOut(ctx context.Context, outletID, id, actor string, in ports.StockMovementInput) (*domain.Ingredient, error) {
	return s.move(ctx, outletID, id, actor, domain.StockOut, in)
}

func (s *InventoryService) Transactions(ctx context.Context, outletID, id string, limit int) ([]*domain.StockTransaction, error) {
	if _, err := s.Get(ctx, outletID, id); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, id, limit)
}

func (s *InventoryService) move(ctx context.Context, outletID, id, actor, kind string, in ports.StockMovementInput) (*domain.Ingredient, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be greater than 0")
	}
	if _, err := s.Get(ctx, outletID, id); err != nil {
		return nil, err
	}

	delta := in.Quantity
	if kind == domain.StockOut {
		delta = -delta
	}
	ing, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	tx := &domain.StockTransaction{
		ID:           uuid.NewString(),
		IngredientID: id,
		Type:         kind,
		Quantity:     in.Quantity,
		BalanceAfter: ing.Quantity,
		Reason:       in.Reason,
		RecordedBy:   actor,
		OutletID:     ing.OutletID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.InsertTransaction(ctx, tx); err != nil {
		s.logger.Error().Err(err).Str("ingredient_id", id).Str("type", kind).Msg("failed to record stock transaction")
	}
	if ing.LowStock() {
		s.logger.Warn().Str("ingredient_id", id).Str("name", ing.Name).Float64("quantity", ing.Quantity).Msg("ingredient below reorder level")
	}
	return ing, nil
}

func validateIngredient(in ports.IngredientInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return domain.NewValidationError("name and unit are required")
	}
	if in.Quantity < 0 || in.ReorderLevel < 0 || in.CostPerUnit < 0 {
		return domain.NewValidationError("quantity, reorder_level and cost_per_unit must not be negative")
	}
	return nil
}
