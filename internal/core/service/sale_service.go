package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/pkg/importer"
)

// SaleService records in-store sales and builds the daily income view.
type SaleService struct {
	sales    ports.SaleRepository
	online   ports.OnlineOrderRepository
	expenses ports.ExpenseRepository
	uploads  uploads
	logger   zerolog.Logger
	onImport func(kind string, rows int)
}

func NewSaleService(sales ports.SaleRepository, online ports.OnlineOrderRepository, expenses ports.ExpenseRepository, archive ports.UploadArchive, logger zerolog.Logger) *SaleService {
	return &SaleService{
		sales:    sales,
		online:   online,
		expenses: expenses,
		uploads:  uploads{archive: archive, logger: logger},
		logger:   logger,
	}
}

// OnImport registers a hook called with the number of imported rows.
func (s *SaleService) OnImport(fn func(kind string, rows int)) { s.onImport = fn }

func (s *SaleService) Create(ctx context.Context, outletID, actor string, in ports.SaleInput) (*domain.Sale, error) {
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("sale must contain at least one item")
	}
	sale := &domain.Sale{
		ID:            uuid.NewString(),
		Date:          in.Date.UTC(),
		InvoiceNo:     strings.TrimSpace(in.InvoiceNo),
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		RecordedBy:    actor,
		OutletID:      outletID,
		CreatedAt:     time.Now().UTC(),
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, domain.NewValidationError("each item needs a name, a positive quantity and a price")
		}
		sale.Items = append(sale.Items, domain.SaleItem{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	sale.Recalculate()
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) List(ctx context.Context, outletID string, start, end time.Time) ([]*domain.Sale, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	return s.sales.List(ctx, f)
}

func (s *SaleService) Get(ctx context.Context, outletID, id string) (*domain.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outletID != "" && sale.OutletID != outletID {
		return nil, domain.ErrOutletForbidden
	}
	return sale, nil
}

func (s *SaleService) Delete(ctx context.Context, id string) error {
	return s.sales.Delete(ctx, id)
}

// Import stores every sale the file yields; bad rows are reported, not fatal.
func (s *SaleService) Import(ctx context.Context, outletID, actor string, f ports.ImportFile) (*ports.ImportSummary, error) {
	rows, err := readUpload(f)
	if err != nil {
		return nil, err
	}
	res := importer.Sales(rows, actor)
	now := time.Now().UTC()
	for _, sale := range res.Records {
		sale.ID = uuid.NewString()
		sale.OutletID = outletID
		sale.CreatedAt = now
	}
	if len(res.Records) > 0 {
		if err := s.sales.CreateMany(ctx, res.Records); err != nil {
			return nil, err
		}
	}
	archived := s.uploads.keep(ctx, "sales", outletID, f)
	s.logger.Info().Str("outlet_id", outletID).Int("imported", len(res.Records)).Int("row_errors", len(res.Errors)).Msg("sales imported")
	if s.onImport != nil {
		s.onImport("sales", len(res.Records))
	}
	return summarize(res, len(res.Records), archived), nil
}

// DailyIncome combines in-store sales, platform payouts and expenses per day.
func (s *SaleService) DailyIncome(ctx context.Context, outletID string, start, end time.Time) ([]domain.DailyIncome, error) {
	f, err := dateRange(outletID, start, end)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.DailyTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	payouts, err := s.online.DailyPayouts(ctx, f)
	if err != nil {
		return nil, err
	}
	spent, err := s.expenses.DailyTotals(ctx, f)
	if err != nil {
		return nil, err
	}

	days := map[string]*domain.DailyIncome{}
	day := func(key string) *domain.DailyIncome {
		d, ok := days[key]
		if !ok {
			d = &domain.DailyIncome{Date: key}
			days[key] = d
		}
		return d
	}
	for _, t := range sales {
		d := day(t.Day)
		d.SalesTotal += t.Total
		d.SalesCount += t.Count
	}
	for _, t := range payouts {
		day(t.Day).OnlinePayout += t.Total
	}
	for _, t := range spent {
		day(t.Day).Expenses += t.Total
	}

	out := make([]domain.DailyIncome, 0, len(days))
	for _, d := range days {
		d.SalesTotal = round2(d.SalesTotal)
		d.OnlinePayout = round2(d.OnlinePayout)
		d.Expenses = round2(d.Expenses)
		d.Net = round2(d.SalesTotal + d.OnlinePayout - d.Expenses)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
