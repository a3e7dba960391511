package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

func TestSaleService_DailyIncomeMergesSources(t *testing.T) {
	totals := &stubDayTotals{
		sales:    []domain.DayTotal{{Day: "2026-03-02", Total: 1000, Count: 4}, {Day: "2026-03-01", Total: 500.25, Count: 2}},
		payouts:  []domain.DayTotal{{Day: "2026-03-02", Total: 300}, {Day: "2026-03-03", Total: 120}},
		expenses: []domain.DayTotal{{Day: "2026-03-01", Total: 800}},
	}
	svc := NewSaleService(&stubSaleRepo{totals: totals}, &stubOnlineRepo{totals: totals}, &stubExpenseRepo{totals: totals}, nil, zerolog.Nop())

	days, err := svc.DailyIncome(context.Background(), "o1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, domain.DailyIncome{Date: "2026-03-01", SalesTotal: 500.25, SalesCount: 2, Expenses: 800, Net: -299.75}, days[0])
	assert.Equal(t, domain.DailyIncome{Date: "2026-03-02", SalesTotal: 1000, SalesCount: 4, OnlinePayout: 300, Net: 1300}, days[1])
	assert.Equal(t, domain.DailyIncome{Date: "2026-03-03", OnlinePayout: 120, Net: 120}, days[2])
}

func TestSaleService_DateRangeValidation(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{totals: &stubDayTotals{}}, &stubOnlineRepo{totals: &stubDayTotals{}}, &stubExpenseRepo{totals: &stubDayTotals{}}, nil, zerolog.Nop())
	start := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.DailyIncome(context.Background(), "o1", start, start.AddDate(0, 0, -1))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

type recordingArchive struct {
	keys []string
}

func (a *recordingArchive) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	a.keys = append(a.keys, key)
	return nil
}

func TestSaleService_ImportStoresAndArchives(t *testing.T) {
	repo := &stubSaleRepo{totals: &stubDayTotals{}}
	archive := &recordingArchive{}
	svc := NewSaleService(repo, &stubOnlineRepo{}, &stubExpenseRepo{}, archive, zerolog.Nop())

	var hooked int
	svc.OnImport(func(_ string, rows int) { hooked = rows })

	csv := "Date,Invoice,Item,Qty,Price,Payment,Notes\n" +
		"2026-03-01,INV-1,Latte,2,150,cash,\n" +
		",,Muffin,1,90,,\n" +
		"2026-03-02,INV-2,Tea,1,40,upi,\n" +
		",,Scone,x,60,,\n"
	sum, err := svc.Import(context.Background(), "o1", "mgr", ports.ImportFile{Filename: "sales.csv", Content: []byte(csv)})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Imported)
	assert.Equal(t, 430.0, sum.Total)
	assert.Len(t, sum.Errors, 1)
	assert.True(t, sum.Archived)
	assert.Equal(t, 2, hooked)
	require.Len(t, repo.created, 2)
	for _, s := range repo.created {
		assert.Equal(t, "o1", s.OutletID)
		assert.NotEmpty(t, s.ID)
	}
	require.Len(t, archive.keys, 1)
	assert.Contains(t, archive.keys[0], "sales/o1/")
}

func TestSaleService_ImportRejectsEmptyAndUnknownFormats(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, &stubOnlineRepo{}, &stubExpenseRepo{}, nil, zerolog.Nop())
	var ve *domain.ValidationError

	_, err := svc.Import(context.Background(), "o1", "mgr", ports.ImportFile{Filename: "sales.csv"})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Import(context.Background(), "o1", "mgr", ports.ImportFile{Filename: "sales.xls", Content: []byte("x")})
	assert.ErrorAs(t, err, &ve)
}

func TestReconciliationService_DuplicateDay(t *testing.T) {
	svc := NewReconciliationService(&stubReconRepo{days: map[string]bool{}}, nil, zerolog.Nop())
	ctx := context.Background()
	in := ports.ReconciliationInput{
		Date:        time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC),
		OpeningCash: 1000, CashSales: 5000, CountedCash: 5850, Coins: 100,
	}

	r, err := svc.Create(ctx, "o1", "mgr", in)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, r.ExpectedCash)
	assert.Equal(t, -50.0, r.Difference)
	assert.Equal(t, domain.ReconShort, r.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), r.Date)

	in.Date = in.Date.Add(time.Hour)
	_, err = svc.Create(ctx, "o1", "mgr", in)
	assert.ErrorIs(t, err, domain.ErrReconExists)

	_, err = svc.Create(ctx, "o2", "mgr", in)
	assert.NoError(t, err)
}

func TestReconciliationService_ImportReportsDuplicates(t *testing.T) {
	svc := NewReconciliationService(&stubReconRepo{days: map[string]bool{}}, nil, zerolog.Nop())
	csv := "Date,Opening,Cash Sales,Counted,Coins,Online,Notes\n" +
		"2026-03-01,1000,5000,6000,0,0,\n" +
		"2026-03-01,1000,5000,6000,0,0,again\n" +
		"2026-03-02,0,0,0,0,0,\n"
	sum, err := svc.Import(context.Background(), "o1", "mgr", ports.ImportFile{Filename: "recon.csv", Content: []byte(csv)})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Imported)
	assert.Len(t, sum.Errors, 1)
	assert.False(t, sum.Archived)
}

func TestOfferService_ValidatePreview(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubOfferRepo(
		&domain.Offer{ID: "1", Code: "SUMMER", DiscountPercent: 20, MaxDiscount: 50, MinOrderAmount: 100, Active: true},
		&domain.Offer{ID: "2", Code: "OLD", DiscountPercent: 10, Active: true, ValidTo: now.AddDate(0, 0, -1)},
	)
	svc := NewOfferService(repo)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	p, err := svc.Validate(ctx, "summer", 400)
	require.NoError(t, err)
	assert.True(t, p.Valid)
	assert.Equal(t, 50.0, p.Discount)
	assert.Equal(t, 350.0, p.FinalAmount)

	p, err = svc.Validate(ctx, "SUMMER", 80)
	require.NoError(t, err)
	assert.False(t, p.Valid)
	assert.Equal(t, 80.0, p.FinalAmount)

	p, err = svc.Validate(ctx, "OLD", 200)
	require.NoError(t, err)
	assert.False(t, p.Valid)
	assert.Equal(t, "offer has expired", p.Reason)

	_, err = svc.Validate(ctx, "MISSING", 200)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "SUMMER", active[0].Code)
}

func TestOfferService_CreateDuplicateCode(t *testing.T) {
	svc := NewOfferService(newStubOfferRepo())
	ctx := context.Background()
	_, err := svc.Create(ctx, "o1", ports.OfferInput{Code: "happy", DiscountPercent: 15})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "o1", ports.OfferInput{Code: "HAPPY", DiscountPercent: 5})
	assert.ErrorIs(t, err, domain.ErrOfferExists)
}

func TestOfferService_WritesStayInOwnOutlet(t *testing.T) {
	repo := newStubOfferRepo()
	svc := NewOfferService(repo)
	ctx := context.Background()

	o, err := svc.Create(ctx, "o1", ports.OfferInput{Code: "LUNCH", DiscountPercent: 10})
	require.NoError(t, err)
	assert.Equal(t, "o1", o.OutletID)

	_, err = svc.Update(ctx, "o2", o.ID, ports.OfferInput{DiscountPercent: 50})
	assert.ErrorIs(t, err, domain.ErrOutletForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "o2", o.ID), domain.ErrOutletForbidden)

	stored, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.DiscountPercent)

	updated, err := svc.Update(ctx, "o1", o.ID, ports.OfferInput{DiscountPercent: 25})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.DiscountPercent)
	assert.NoError(t, svc.Delete(ctx, "o1", o.ID))
}

func TestForecastService_Compute(t *testing.T) {
	svc := NewForecastService(&stubForecastRepo{}, newStubMenuRepo(&domain.MenuItem{ID: "latte", Name: "Latte"}))
	f, err := svc.Create(context.Background(), "o1", "mgr", ports.ForecastInput{
		MenuItemID: "latte",
		IngredientCosts: []ports.IngredientCostInput{
			{Name: "milk", Quantity: 0.2, UnitCost: 60},
			{Name: "beans", Quantity: 0.018, UnitCost: 1500},
		},
		OverheadPerUnit: 15,
		SellingPrice:    180,
		ExpectedUnits:   300,
	})
	require.NoError(t, err)
	assert.Equal(t, "Latte", f.ItemName)
	assert.Equal(t, 54.0, f.UnitCost)
	assert.Equal(t, 126.0, f.UnitProfit)
	assert.Equal(t, 37800.0, f.TotalProfit)
	assert.Equal(t, 70.0, f.MarginPercent)
}

type stubForecastRepo struct {
	ports.ForecastRepository
}

func (stubForecastRepo) Create(context.Context, *domain.PriceForecast) error { return nil }

func TestLoyaltyService_RedeemGuarded(t *testing.T) {
	repo := newStubLoyaltyRepo()
	svc := NewLoyaltyService(repo, 10, zerolog.Nop())
	ctx := context.Background()

	acc, err := svc.Account(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.Points)

	_, err = svc.Adjust(ctx, "u1", 40, "")
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, "u1", 50)
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	acc, err = svc.Redeem(ctx, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 10, acc.Points)
	assert.Equal(t, 40, acc.LifetimePoints)

	hist, err := svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}
