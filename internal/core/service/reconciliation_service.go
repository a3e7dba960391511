package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/pkg/importer"
)

// ReconciliationService records end-of-day cash counts.
type ReconciliationService struct {
	repo     ports.ReconciliationRepository
	uploads  uploads
	logger   zerolog.Logger
	onImport func(kind string, rows int)
}

func NewReconciliationService(repo ports.ReconciliationRepository, archive ports.UploadArchive, logger zerolog.Logger) *ReconciliationService {
	return &ReconciliationService{repo: repo, uploads: uploads{archive: archive, logger: logger}, logger: logger}
}

func (s *ReconciliationService) OnImport(fn func(kind string, rows int)) { s.onImport = fn }

// Create stores one reconciliation per outlet and day; a second one for the
// same day fails with domain.ErrReconExists.
func (s *ReconciliationService) Create(ctx context.Context, outletID, actor string, in ports.ReconciliationInput) (*domain.CashReconciliation, error) {
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	if in.OpeningCash < 0 || in.CashSales < 0 || in.CountedCash < 0 || in.Coins < 0 || in.OnlineIncome < 0 {
		return nil, domain.NewValidationError("amounts must not be negative")
	}
	r := &domain.CashReconciliation{
		ID:           uuid.NewString(),
		Date:         in.Date,
		OpeningCash:  in.OpeningCash,
		CashSales:    in.CashSales,
		CountedCash:  in.CountedCash,
		Coins:        in.Coins,
		OnlineIncome: in.OnlineIncome,
		Notes:        in.Notes,
		RecordedBy:   actor,
		OutletID:     outletID,
		CreatedAt:    time.Now().UTC(),
	}
	r.Reconcile()
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	if r.Status != domain.ReconBalanced {
		s.logger.Warn().Str("outlet_id", outletID).Str("date", r.Date.Format("2006-01-02")).Float64("difference", r.Difference).Msg("cash drawer does not balance")
	}
	return r, nil
}

func (s *ReconciliationService) List(ctx context.Context, outletID string, start, end time.Time) ([]*domain.CashReconciliation, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f)
}

func (s *ReconciliationService) Get(ctx context.Context, outletID, id string) (*domain.CashReconciliation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && r.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return r, nil
}

// Import inserts reconciliations one by one so a duplicate day only rejects
// its own row.
func (s *ReconciliationService) Import(ctx context.Context, outletID, actor string, f ports.ImportFile) (*ports.ImportSummary, error) {
	rows, err := readUpload(f)
	if err != nil {
		return nil, err
	}
	res := importer.Reconciliations(rows, actor)
	now := time.Now().UTC()
	imported := 0
	for _, r := range res.Records {
		r.ID = uuid.NewString()
		r.OutletID = outletID
		r.CreatedAt = now
		if err := s.repo.Create(ctx, r); err != nil {
			if errors.Is(err, domain.ErrReconExists) {
				res.Errors = append(res.Errors, importer.RowError{Reason: "reconciliation for " + r.Date.Format("2006-01-02") + " already exists"})
				continue
			}
			return nil, err
		}
		imported++
	}
	archived := s.uploads.keep(ctx, "reconciliations", outletID, f)
	s.logger.Info().Str("outlet_id", outletID).Int("imported", imported).Int("row_errors", len(res.Errors)).Msg("reconciliations imported")
	if s.onImport != nil {
		s.onImport("reconciliations", imported)
	}
	return summarize(res, imported, archived), nil
}
