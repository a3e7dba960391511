package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/pkg/importer"
)

// OnlineSaleService tracks delivery platform orders and their payouts.
type OnlineSaleService struct {
	repo     ports.OnlineOrderRepository
	uploads  uploads
	logger   zerolog.Logger
	onImport func(kind string, rows int)
}

func NewOnlineSaleService(repo ports.OnlineOrderRepository, archive ports.UploadArchive, logger zerolog.Logger) *OnlineSaleService {
	return &OnlineSaleService{repo: repo, uploads: uploads{archive: archive, logger: logger}, logger: logger}
}

func (s *OnlineSaleService) OnImport(fn func(kind string, rows int)) { s.onImport = fn }

func (s *OnlineSaleService) Create(ctx context.Context, outletID, actor string, in ports.OnlineOrderInput) (*domain.OnlineOrder, error) {
	if strings.TrimSpace(in.Platform) == "" || strings.TrimSpace(in.PlatformOrderID) == "" || in.Date.IsZero() {
		return nil, domain.NewValidationError("platform, platform_order_id and date are required")
	}
	if in.GrossAmount <= 0 {
		return nil, domain.NewValidationError("gross_amount must be greater than 0")
	}
	if !percent(in.DiscountPercent) || !percent(in.CommissionPercent) {
		return nil, domain.NewValidationError("percentages must be between 0 and 100")
	}
	o := &domain.OnlineOrder{
		ID:                uuid.NewString(),
		Platform:          importer.NormalizePlatform(in.Platform),
		PlatformOrderID:   strings.TrimSpace(in.PlatformOrderID),
		Date:              in.Date.UTC(),
		GrossAmount:       in.GrossAmount,
		DiscountPercent:   in.DiscountPercent,
		CommissionPercent: in.CommissionPercent,
		Status:            domain.OnlinePending,
		RecordedBy:        actor,
		OutletID:          outletID,
		CreatedAt:         time.Now().UTC(),
	}
	o.ComputePayout()
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OnlineSaleService) List(ctx context.Context, outletID string, start, end time.Time, platform string) ([]*domain.OnlineOrder, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	if platform != "" {
		platform = importer.NormalizePlatform(platform)
	}
	return s.repo.List(ctx, f, platform)
}

func (s *OnlineSaleService) SetStatus(ctx context.Context, outletID, id, status string) (*domain.OnlineOrder, error) {
	switch status {
	case domain.OnlinePending, domain.OnlineSettled, domain.OnlineDisputed:
	default:
		return nil, domain.NewValidationError("status must be one of: pending, settled, disputed")
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && o.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

func (s *OnlineSaleService) Import(ctx context.Context, outletID, actor string, f ports.ImportFile) (*ports.ImportSummary, error) {
	rows, err := readUpload(f)
	if err != nil {
		return nil, err
	}
	res := importer.OnlineOrders(rows, actor)
	now := time.Now().UTC()
	for _, o := range res.Records {
		o.ID = uuid.NewString()
		o.OutletID = outletID
		o.CreatedAt = now
	}
	if len(res.Records) > 0 {
		if err := s.repo.CreateMany(ctx, res.Records); err != nil {
			return nil, err
		}
	}
	archived := s.uploads.keep(ctx, "online-sales", outletID, f)
	s.logger.Info().Str("outlet_id", outletID).Int("imported", len(res.Records)).Int("row_errors", len(res.Errors)).Msg("online orders imported")
	if s.onImport != nil {
		s.onImport("online-sales", len(res.Records))
	}
	return summarize(res, len(res.Records), archived), nil
}

// Reconciliation summarizes orders per platform over the range.
func (s *OnlineSaleService) Reconciliation(ctx context.Context, outletID string, start, end time.Time) ([]domain.PlatformSummary, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	sums, err := s.repo.SummaryByPlatform(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range sums {
		sums[i].Gross = round2(sums[i].Gross)
		sums[i].Discount = round2(sums[i].Discount)
		sums[i].Commission = round2(sums[i].Commission)
		sums[i].Payout = round2(sums[i].Payout)
	}
	return sums, nil
}

func percent(v float64) bool { return v >= 0 && v <= 100 }
