package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

const (
	collectionSales           = "sales"
	collectionExpenses        = "expenses"
	collectionOnlineOrders    = "online_orders"
	collectionForecasts       = "price_forecasts"
	collectionReconciliations = "cash_reconciliations"
	collectionAuditLogs       = "audit_logs"
)

type SaleRepository struct {
	c collection[domain.Sale]
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{c: newCollection[domain.Sale](db, collectionSales, domain.ErrSaleNotFound)}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) error {
	return r.c.insert(ctx, s)
}

func (r *SaleRepository) CreateMany(ctx context.Context, sales []*domain.Sale) error {
	return r.c.insertMany(ctx, sales)
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	return r.c.findByID(ctx, id)
}

func (r *SaleRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Sale, error) {
	return r.c.find(ctx, scoped(f, "date"), newestFirst("date", f.Limit))
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

func (r *SaleRepository) DailyTotals(ctx context.Context, f ports.ListFilter) ([]domain.DayTotal, error) {
	return aggregate[domain.DayTotal](ctx, r.c.col, dailySum(scoped(f, "date"), "date", "total"))
}

type ExpenseRepository struct {
	c collection[domain.Expense]
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{c: newCollection[domain.Expense](db, collectionExpenses, domain.ErrExpenseNotFound)}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	return r.c.insert(ctx, e)
}

func (r *ExpenseRepository) CreateMany(ctx context.Context, expenses []*domain.Expense) error {
	return r.c.insertMany(ctx, expenses)
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	return r.c.findByID(ctx, id)
}

func (r *ExpenseRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Expense, error) {
	return r.c.find(ctx, scoped(f, "date"), newestFirst("date", f.Limit))
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	return r.c.replaceByID(ctx, e.ID, e)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

func (r *ExpenseRepository) DailyTotals(ctx context.Context, f ports.ListFilter) ([]domain.DayTotal, error) {
	return aggregate[domain.DayTotal](ctx, r.c.col, dailySum(scoped(f, "date"), "date", "amount"))
}

func (r *ExpenseRepository) TotalsByType(ctx context.Context, f ports.ListFilter) ([]domain.TypeTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scoped(f, "date")}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "total", Value: bson.M{"$sum": "$amount"}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}
	return aggregate[domain.TypeTotal](ctx, r.c.col, pipeline)
}

type OnlineOrderRepository struct {
	c collection[domain.OnlineOrder]
}

func NewOnlineOrderRepository(db *mongo.Database) *OnlineOrderRepository {
	return &OnlineOrderRepository{c: newCollection[domain.OnlineOrder](db, collectionOnlineOrders, domain.ErrOnlineSaleNotFound)}
}

func (r *OnlineOrderRepository) Create(ctx context.Context, o *domain.OnlineOrder) error {
	return r.c.insert(ctx, o)
}

func (r *OnlineOrderRepository) CreateMany(ctx context.Context, orders []*domain.OnlineOrder) error {
	return r.c.insertMany(ctx, orders)
}

func (r *OnlineOrderRepository) FindByID(ctx context.Context, id string) (*domain.OnlineOrder, error) {
	return r.c.findByID(ctx, id)
}

func (r *OnlineOrderRepository) List(ctx context.Context, f ports.ListFilter, platform string) ([]*domain.OnlineOrder, error) {
	filter := scoped(f, "date")
	if platform != "" {
		filter["platform"] = platform
	}
	return r.c.find(ctx, filter, newestFirst("date", f.Limit))
}

func (r *OnlineOrderRepository) SetStatus(ctx context.Context, id, status string) error {
	return r.c.updateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *OnlineOrderRepository) DailyPayouts(ctx context.Context, f ports.ListFilter) ([]domain.DayTotal, error) {
	return aggregate[domain.DayTotal](ctx, r.c.col, dailySum(scoped(f, "date"), "date", "payout"))
}

func (r *OnlineOrderRepository) SummaryByPlatform(ctx context.Context, f ports.ListFilter) ([]domain.PlatformSummary, error) {
	countStatus := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scoped(f, "date")}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$platform"},
			{Key: "orders", Value: bson.M{"$sum": 1}},
			{Key: "gross", Value: bson.M{"$sum": "$gross_amount"}},
			{Key: "discount", Value: bson.M{"$sum": "$discount_amount"}},
			{Key: "commission", Value: bson.M{"$sum": "$commission_amount"}},
			{Key: "payout", Value: bson.M{"$sum": "$payout"}},
			{Key: "settled", Value: countStatus(domain.OnlineSettled)},
			{Key: "pending", Value: countStatus(domain.OnlinePending)},
			{Key: "disputed", Value: countStatus(domain.OnlineDisputed)},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[domain.PlatformSummary](ctx, r.c.col, pipeline)
}

type ForecastRepository struct {
	c collection[domain.PriceForecast]
}

func NewForecastRepository(db *mongo.Database) *ForecastRepository {
	return &ForecastRepository{c: newCollection[domain.PriceForecast](db, collectionForecasts, domain.ErrForecastNotFound)}
}

func (r *ForecastRepository) Create(ctx context.Context, f *domain.PriceForecast) error {
	return r.c.insert(ctx, f)
}

func (r *ForecastRepository) FindByID(ctx context.Context, id string) (*domain.PriceForecast, error) {
	return r.c.findByID(ctx, id)
}

func (r *ForecastRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.PriceForecast, error) {
	return r.c.find(ctx, scoped(f, "created_at"), newestFirst("created_at", f.Limit))
}

func (r *ForecastRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

type ReconciliationRepository struct {
	c collection[domain.CashReconciliation]
}

func NewReconciliationRepository(db *mongo.Database) *ReconciliationRepository {
	return &ReconciliationRepository{c: newCollection[domain.CashReconciliation](db, collectionReconciliations, domain.ErrReconNotFound)}
}

// Create relies on the unique (outlet_id, date) index to reject a second
// record for the same day.
func (r *ReconciliationRepository) Create(ctx context.Context, rec *domain.CashReconciliation) error {
	if err := r.c.insert(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrReconExists
		}
		return err
	}
	return nil
}

func (r *ReconciliationRepository) FindByID(ctx context.Context, id string) (*domain.CashReconciliation, error) {
	return r.c.findByID(ctx, id)
}

func (r *ReconciliationRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.CashReconciliation, error) {
	return r.c.find(ctx, scoped(f, "date"), newestFirst("date", f.Limit))
}

type AuditRepository struct {
	c collection[domain.AuditLog]
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{c: newCollection[domain.AuditLog](db, collectionAuditLogs, domain.ErrNotFound)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditLog) error {
	return r.c.insert(ctx, entry)
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	return r.c.find(ctx, bson.M{}, newestFirst("created_at", limit))
}
