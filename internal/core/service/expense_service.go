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

type ExpenseService struct {
	repo     ports.ExpenseRepository
	uploads  uploads
	logger   zerolog.Logger
	onImport func(kind string, rows int)
}

func NewExpenseService(repo ports.ExpenseRepository, archive ports.UploadArchive, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, uploads: uploads{archive: archive, logger: logger}, logger: logger}
}

func (s *ExpenseService) OnImport(fn func(kind string, rows int)) { s.onImport = fn }

func (s *ExpenseService) Create(ctx context.Context, outletID, actor string, in ports.ExpenseInput) (*domain.Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	e := &domain.Expense{
		ID:         uuid.NewString(),
		RecordedBy: actor,
		OutletID:   outletID,
		CreatedAt:  time.Now().UTC(),
	}
	applyExpense(e, in)
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context, outletID string, start, end time.Time) ([]*domain.Expense, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f)
}

func (s *ExpenseService) Update(ctx context.Context, outletID, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	e, err := s.owned(ctx, outletID, id)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	applyExpense(e, in)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, outletID, id string) error {
	if _, err := s.owned(ctx, outletID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary totals expenses by type over the range.
func (s *ExpenseService) Summary(ctx context.Context, outletID string, start, end time.Time) ([]domain.TypeTotal, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.TotalsByType(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range totals {
		totals[i].Total = round2(totals[i].Total)
	}
	return totals, nil
}

func (s *ExpenseService) Import(ctx context.Context, outletID, actor string, f ports.ImportFile) (*ports.ImportSummary, error) {
	rows, err := readUpload(f)
	if err != nil {
		return nil, err
	}
	res := importer.Expenses(rows, actor)
	now := time.Now().UTC()
	for _, e := range res.Records {
		e.ID = uuid.NewString()
		e.OutletID = outletID
		e.CreatedAt = now
	}
	if len(res.Records) > 0 {
		if err := s.repo.CreateMany(ctx, res.Records); err != nil {
			return nil, err
		}
	}
	archived := s.uploads.keep(ctx, "expenses", outletID, f)
	s.logger.Info().Str("outlet_id", outletID).Int("imported", len(res.Records)).Int("row_errors", len(res.Errors)).Msg("expenses imported")
	if s.onImport != nil {
		s.onImport("expenses", len(res.Records))
	}
	return summarize(res, len(res.Records), archived), nil
}

// Template returns the downloadable import template and its file name.
func (s *ExpenseService) Template(format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		b, err := importer.ExpenseTemplateCSV()
		return b, "expenses_template.csv", err
	case "xlsx":
		b, err := importer.ExpenseTemplateXLSX()
		return b, "expenses_template.xlsx", err
	default:
		return nil, "", domain.NewValidationError("format must be csv or xlsx")
	}
}

func (s *ExpenseService) owned(ctx context.Context, outletID, id string) (*domain.Expense, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && e.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return e, nil
}

func validateExpense(in ports.ExpenseInput) error {
	if in.Date.IsZero() || strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Description) == "" {
		return domain.NewValidationError("date, type and description are required")
	}
	if in.Amount <= 0 {
		return domain.NewValidationError("amount must be greater than 0")
	}
	return nil
}

func applyExpense(e *domain.Expense, in ports.ExpenseInput) {
	e.Date = in.Date.UTC()
	e.Type = strings.TrimSpace(in.Type)
	e.Description = strings.TrimSpace(in.Description)
	e.Amount = in.Amount
	e.Vendor = in.Vendor
	e.PaymentMethod = in.PaymentMethod
	e.InvoiceNo = in.InvoiceNo
	e.Notes = in.Notes
}
