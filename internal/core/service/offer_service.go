package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// OfferPreview is the outcome of validating a code against an amount.
type OfferPreview struct {
	Code        string  `json:"code"`
	Valid       bool    `json:"valid"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
	Reason      string  `json:"reason,omitempty"`
}

type OfferService struct {
	repo ports.OfferRepository
	now  func() time.Time
}

func NewOfferService(repo ports.OfferRepository) *OfferService {
	return &OfferService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// ListActive returns offers usable right now.
func (s *OfferService) ListActive(ctx context.Context) ([]*domain.Offer, error) {
	all, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*domain.Offer, 0, len(all))
	for _, o := range all {
		if o.Usable(now, o.MinOrderAmount) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OfferService) ListAll(ctx context.Context) ([]*domain.Offer, error) {
	return s.repo.List(ctx, false)
}

// Create adds an offer owned by outletID.
func (s *OfferService) Create(ctx context.Context, outletID string, in ports.OfferInput) (*domain.Offer, error) {
	if err := validateOffer(in); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	o := &domain.Offer{
		ID:              uuid.NewString(),
		Code:            strings.ToUpper(strings.TrimSpace(in.Code)),
		Description:     in.Description,
		DiscountPercent: in.DiscountPercent,
		MaxDiscount:     in.MaxDiscount,
		MinOrderAmount:  in.MinOrderAmount,
		MaxUses:         in.MaxUses,
		ValidFrom:       in.ValidFrom,
		ValidTo:         in.ValidTo,
		Active:          active,
		OutletID:        outletID,
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the offer terms. The code and usage counter are kept.
func (s *OfferService) Update(ctx context.Context, outletID, id string, in ports.OfferInput) (*domain.Offer, error) {
	o, err := s.owned(ctx, outletID, id)
	if err != nil {
		return nil, err
	}
	in.Code = o.Code
	if err := validateOffer(in); err != nil {
		return nil, err
	}
	o.Description = in.Description
	o.DiscountPercent = in.DiscountPercent
	o.MaxDiscount = in.MaxDiscount
	o.MinOrderAmount = in.MinOrderAmount
	o.MaxUses = in.MaxUses
	o.ValidFrom = in.ValidFrom
	o.ValidTo = in.ValidTo
	if in.Active != nil {
		o.Active = *in.Active
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfferService) Delete(ctx context.Context, outletID, id string) error {
	if _, err := s.owned(ctx, outletID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *OfferService) owned(ctx context.Context, outletID, id string) (*domain.Offer, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return o, nil
}

// Validate previews the discount a code would give on amount without
// consuming a use.
func (s *OfferService) Validate(ctx context.Context, code string, amount float64) (*OfferPreview, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.NewValidationError("code is required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount must be greater than 0")
	}
	o, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	p := &OfferPreview{Code: o.Code, FinalAmount: amount}
	now := s.now()
	switch {
	case !o.Active:
		p.Reason = "offer is inactive"
	case !o.ValidFrom.IsZero() && now.Before(o.ValidFrom):
		p.Reason = "offer has not started"
	case !o.ValidTo.IsZero() && now.After(o.ValidTo):
		p.Reason = "offer has expired"
	case o.MaxUses > 0 && o.UsedCount >= o.MaxUses:
		p.Reason = domain.ErrOfferExhausted.Error()
	case amount < o.MinOrderAmount:
		p.Reason = "order amount is below the minimum"
	default:
		p.Valid = true
		p.Discount = o.DiscountFor(amount)
		p.FinalAmount = round2(amount - p.Discount)
	}
	return p, nil
}

func validateOffer(in ports.OfferInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return domain.NewValidationError("code is required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return domain.NewValidationError("discount_percent must be between 0 and 100")
	}
	if in.MaxDiscount < 0 || in.MinOrderAmount < 0 || in.MaxUses < 0 {
		return domain.NewValidationError("limits must not be negative")
	}
	if !in.ValidFrom.IsZero() && !in.ValidTo.IsZero() && in.ValidTo.Before(in.ValidFrom) {
		return domain.NewValidationError("valid_to must be after valid_from")
	}
	return nil
}
