package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// LoyaltyService manages point balances.
type LoyaltyService struct {
	repo     ports.LoyaltyRepository
	perPoint float64
	logger   zerolog.Logger
}

// NewLoyaltyService builds the service; perPoint is the order amount that earns one point.
func NewLoyaltyService(repo ports.LoyaltyRepository, perPoint float64, logger zerolog.Logger) *LoyaltyService {
	if perPoint <= 0 {
		perPoint = 10
	}
	return &LoyaltyService{repo: repo, perPoint: perPoint, logger: logger}
}

// Account returns the balance for a user, an empty one when nothing was earned yet.
func (s *LoyaltyService) Account(ctx context.Context, userID string) (*domain.LoyaltyAccount, error) {
	acc, err := s.repo.FindAccount(ctx, userID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &domain.LoyaltyAccount{UserID: userID}, nil
	}
	return acc, err
}

func (s *LoyaltyService) History(ctx context.Context, userID string, limit int) ([]*domain.LoyaltyTransaction, error) {
	return s.repo.ListTransactions(ctx, userID, limit)
}

// Award credits the points earned by a completed order and returns them.
func (s *LoyaltyService) Award(ctx context.Context, o *domain.Order) (int, error) {
	points := domain.PointsFor(o.Total, s.perPoint)
	if points == 0 {
		return 0, nil
	}
	if _, err := s.apply(ctx, o.UserID, o.ID, points, "order completed"); err != nil {
		return 0, err
	}
	return points, nil
}

// Redeem spends points from the caller's balance.
func (s *LoyaltyService) Redeem(ctx context.Context, userID string, points int) (*domain.LoyaltyAccount, error) {
	if points <= 0 {
		return nil, domain.NewValidationError("points must be greater than 0")
	}
	return s.apply(ctx, userID, "", -points, "redeemed")
}

// Adjust is an admin correction; delta may be negative.
func (s *LoyaltyService) Adjust(ctx context.Context, userID string, delta int, reason string) (*domain.LoyaltyAccount, error) {
	if delta == 0 {
		return nil, domain.NewValidationError("points must not be zero")
	}
	if reason == "" {
		reason = "manual adjustment"
	}
	return s.apply(ctx, userID, "", delta, reason)
}

func (s *LoyaltyService) apply(ctx context.Context, userID, orderID string, delta int, reason string) (*domain.LoyaltyAccount, error) {
	acc, err := s.repo.AddPoints(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	tx := &domain.LoyaltyTransaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderID:   orderID,
		Points:    delta,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertTransaction(ctx, tx); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Int("points", delta).Msg("failed to record loyalty transaction")
	}
	return acc, nil
}
