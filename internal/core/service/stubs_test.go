package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: map[string]*domain.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetOutlets(_ context.Context, id string, outletIDs []string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.OutletIDs = outletIDs
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

type stubOutletRepo struct {
	byID map[string]*domain.Outlet
}

func newStubOutletRepo(outlets ...*domain.Outlet) *stubOutletRepo {
	r := &stubOutletRepo{byID: map[string]*domain.Outlet{}}
	for _, o := range outlets {
		r.byID[o.ID] = o
	}
	return r
}

func (r *stubOutletRepo) Create(_ context.Context, o *domain.Outlet) error {
	for _, existing := range r.byID {
		if existing.Code == o.Code {
			return domain.ErrOutletExists
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *stubOutletRepo) FindByID(_ context.Context, id string) (*domain.Outlet, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOutletNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOutletRepo) List(context.Context) ([]*domain.Outlet, error) {
	var out []*domain.Outlet
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *stubOutletRepo) Update(_ context.Context, o *domain.Outlet) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrOutletNotFound
	}
	r.byID[o.ID] = o
	return nil
}

// stubLimiter counts failures in memory; err makes every call fail.
type stubLimiter struct {
	max   int
	fails map[string]int
	err   error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, fails: map[string]int{}}
}

func (l *stubLimiter) Blocked(_ context.Context, username string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.fails[username] >= l.max, nil
}

func (l *stubLimiter) Fail(_ context.Context, username string) error {
	if l.err != nil {
		return l.err
	}
	l.fails[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.fails, username)
	return nil
}

type stubCategoryRepo struct {
	byID map[string]*domain.Category
}

func newStubCategoryRepo(cats ...*domain.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{byID: map[string]*domain.Category{}}
	for _, c := range cats {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context, outletID string) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		if outletID == "" || c.OutletID == outletID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubMenuRepo struct {
	byID map[string]*domain.MenuItem
}

func newStubMenuRepo(items ...*domain.MenuItem) *stubMenuRepo {
	r := &stubMenuRepo{byID: map[string]*domain.MenuItem{}}
	for _, m := range items {
		r.byID[m.ID] = m
	}
	return r
}

func (r *stubMenuRepo) Create(_ context.Context, m *domain.MenuItem) error {
	r.byID[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.MenuItem, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMenuRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.MenuItem, error) {
	var out []*domain.MenuItem
	for _, id := range ids {
		if m, ok := r.byID[id]; ok {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) List(_ context.Context, outletID, categoryID string, onlyAvailable bool) ([]*domain.MenuItem, error) {
	var out []*domain.MenuItem
	for _, m := range r.byID {
		if (outletID == "" || m.OutletID == outletID) && (categoryID == "" || m.CategoryID == categoryID) && (!onlyAvailable || m.Available) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *domain.MenuItem) error {
	r.byID[m.ID] = m
	return nil
}

func (r *stubMenuRepo) SetAvailability(_ context.Context, id string, available bool) error {
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	m.Available = available
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	createErr error
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{byID: map[string]*domain.Order{}}
	for _, o := range orders {
		r.byID[o.ID] = o
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListFilter, status string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byID {
		if (f.OutletID == "" || o.OutletID == f.OutletID) && (status == "" || string(o.Status) == status) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateStatus mirrors the guarded update of the real repository.
func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, stampField string, at time.Time) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	switch stampField {
	case "prep_started_at":
		o.PrepStartedAt = &at
	case "ready_at":
		o.ReadyAt = &at
	case "completed_at":
		o.CompletedAt = &at
	}
	return nil
}

func (r *stubOrderRepo) SetPointsAwarded(_ context.Context, id string, points int) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.PointsAwarded = points
	return nil
}

type stubOfferRepo struct {
	byID map[string]*domain.Offer
}

func newStubOfferRepo(offers ...*domain.Offer) *stubOfferRepo {
	r := &stubOfferRepo{byID: map[string]*domain.Offer{}}
	for _, o := range offers {
		r.byID[o.ID] = o
	}
	return r
}

func (r *stubOfferRepo) Create(_ context.Context, o *domain.Offer) error {
	for _, existing := range r.byID {
		if existing.Code == o.Code {
			return domain.ErrOfferExists
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *stubOfferRepo) FindByID(_ context.Context, id string) (*domain.Offer, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOfferRepo) FindByCode(_ context.Context, code string) (*domain.Offer, error) {
	for _, o := range r.byID {
		if o.Code == code {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOfferNotFound
}

func (r *stubOfferRepo) List(_ context.Context, activeOnly bool) ([]*domain.Offer, error) {
	var out []*domain.Offer
	for _, o := range r.byID {
		if !activeOnly || o.Active {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOfferRepo) Update(_ context.Context, o *domain.Offer) error {
	r.byID[o.ID] = o
	return nil
}

func (r *stubOfferRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOfferNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubOfferRepo) IncrementUsage(_ context.Context, id string) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	if o.MaxUses > 0 && o.UsedCount >= o.MaxUses {
		return domain.ErrOfferExhausted
	}
	o.UsedCount++
	return nil
}

func (r *stubOfferRepo) ReleaseUsage(_ context.Context, id string) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	if o.UsedCount > 0 {
		o.UsedCount--
	}
	return nil
}

// stubLoyaltyRepo guards balances the way the atomic $inc filter does.
type stubLoyaltyRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.LoyaltyAccount
	txs      []*domain.LoyaltyTransaction
	addErr   error
}

func newStubLoyaltyRepo() *stubLoyaltyRepo {
	return &stubLoyaltyRepo{accounts: map[string]*domain.LoyaltyAccount{}}
}

func (r *stubLoyaltyRepo) FindAccount(_ context.Context, userID string) (*domain.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubLoyaltyRepo) AddPoints(_ context.Context, userID string, delta int) (*domain.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	a, ok := r.accounts[userID]
	if !ok {
		if delta < 0 {
			return nil, domain.ErrInsufficientPoints
		}
		a = &domain.LoyaltyAccount{UserID: userID}
		r.accounts[userID] = a
	}
	if a.Points+delta < 0 {
		return nil, domain.ErrInsufficientPoints
	}
	a.Points += delta
	if delta > 0 {
		a.LifetimePoints += delta
	}
	clone := *a
	return &clone, nil
}

func (r *stubLoyaltyRepo) InsertTransaction(_ context.Context, tx *domain.LoyaltyTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
	return nil
}

func (r *stubLoyaltyRepo) ListTransactions(_ context.Context, userID string, _ int) ([]*domain.LoyaltyTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LoyaltyTransaction
	for _, tx := range r.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type stubIngredientRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Ingredient
	txs  []*domain.StockTransaction
}

func newStubIngredientRepo(items ...*domain.Ingredient) *stubIngredientRepo {
	r := &stubIngredientRepo{byID: map[string]*domain.Ingredient{}}
	for _, i := range items {
		r.byID[i.ID] = i
	}
	return r
}

func (r *stubIngredientRepo) Create(_ context.Context, i *domain.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id string) (*domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIngredientNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubIngredientRepo) List(_ context.Context, outletID string) ([]*domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Ingredient
	for _, i := range r.byID {
		if outletID == "" || i.OutletID == outletID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) ListLowStock(ctx context.Context, outletID string) ([]*domain.Ingredient, error) {
	all, _ := r.List(ctx, outletID)
	var out []*domain.Ingredient
	for _, i := range all {
		if i.LowStock() {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, i *domain.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *stubIngredientRepo) AdjustQuantity(_ context.Context, id string, delta float64) (*domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIngredientNotFound
	}
	if i.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	i.Quantity += delta
	clone := *i
	return &clone, nil
}

func (r *stubIngredientRepo) InsertTransaction(_ context.Context, tx *domain.StockTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
	return nil
}

func (r *stubIngredientRepo) ListTransactions(_ context.Context, ingredientID string, _ int) ([]*domain.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.StockTransaction
	for _, tx := range r.txs {
		if tx.IngredientID == ingredientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// stubDayTotals serves canned aggregation results for the daily income view.
type stubDayTotals struct {
	sales, payouts, expenses []domain.DayTotal
}

type stubSaleRepo struct {
	ports.SaleRepository
	totals  *stubDayTotals
	created []*domain.Sale
}

func (r *stubSaleRepo) CreateMany(_ context.Context, sales []*domain.Sale) error {
	r.created = append(r.created, sales...)
	return nil
}

func (r *stubSaleRepo) DailyTotals(context.Context, ports.ListFilter) ([]domain.DayTotal, error) {
	return r.totals.sales, nil
}

type stubOnlineRepo struct {
	ports.OnlineOrderRepository
	totals *stubDayTotals
}

func (r *stubOnlineRepo) DailyPayouts(context.Context, ports.ListFilter) ([]domain.DayTotal, error) {
	return r.totals.payouts, nil
}

type stubExpenseRepo struct {
	ports.ExpenseRepository
	totals *stubDayTotals
}

func (r *stubExpenseRepo) DailyTotals(context.Context, ports.ListFilter) ([]domain.DayTotal, error) {
	return r.totals.expenses, nil
}

type stubReconRepo struct {
	ports.ReconciliationRepository
	days map[string]bool
}

func (r *stubReconRepo) Create(_ context.Context, rec *domain.CashReconciliation) error {
	key := rec.OutletID + "|" + rec.Date.Format("2006-01-02")
	if r.days[key] {
		return domain.ErrReconExists
	}
	r.days[key] = true
	return nil
}

var errStore = errors.New("store unavailable")
