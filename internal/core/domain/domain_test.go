package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderCompleted, true},
		{OrderReady, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrder_KPTMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ready := start.Add(7*time.Minute + 30*time.Second)

	o := &Order{PrepStartedAt: &start, ReadyAt: &ready}
	kpt, ok := o.KPTMinutes()
	assert.True(t, ok)
	assert.InDelta(t, 7.5, kpt, 0.0001)

	_, ok = (&Order{PrepStartedAt: &start}).KPTMinutes()
	assert.False(t, ok)
}

func TestOffer_DiscountFor(t *testing.T) {
	o := &Offer{DiscountPercent: 20, MaxDiscount: 50}
	assert.Equal(t, 20.0, o.DiscountFor(100))
	assert.Equal(t, 50.0, o.DiscountFor(1000))

	uncapped := &Offer{DiscountPercent: 12.5}
	assert.Equal(t, 12.5, uncapped.DiscountFor(100))
}

func TestOffer_Usable(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	o := &Offer{
		Active:         true,
		ValidFrom:      now.AddDate(0, 0, -1),
		ValidTo:        now.AddDate(0, 0, 1),
		MinOrderAmount: 200,
		MaxUses:        3,
		UsedCount:      2,
	}
	assert.True(t, o.Usable(now, 250))
	assert.False(t, o.Usable(now, 150), "below minimum order")

	o.UsedCount = 3
	assert.False(t, o.Usable(now, 250), "exhausted")

	o.UsedCount = 0
	assert.False(t, o.Usable(now.AddDate(0, 0, 2), 250), "expired")
}

func TestOnlineOrder_ComputePayout(t *testing.T) {
	o := &OnlineOrder{GrossAmount: 1000, DiscountPercent: 10, CommissionPercent: 20}
	o.ComputePayout()

	assert.Equal(t, 100.0, o.DiscountAmount)
	assert.Equal(t, 180.0, o.CommissionAmount)
	assert.Equal(t, 720.0, o.Payout)
}

func TestPriceForecast_Compute(t *testing.T) {
	f := &PriceForecast{
		IngredientCosts: []IngredientCost{
			{Name: "milk", Quantity: 0.2, UnitCost: 60},
			{Name: "coffee", Quantity: 0.018, UnitCost: 1500},
		},
		OverheadPerUnit: 10,
		SellingPrice:    150,
		ExpectedUnits:   300,
	}
	f.Compute()

	assert.Equal(t, 49.0, f.UnitCost)
	assert.Equal(t, 101.0, f.UnitProfit)
	assert.Equal(t, 30300.0, f.TotalProfit)
	assert.Equal(t, 67.33, f.MarginPercent)

	zero := &PriceForecast{OverheadPerUnit: 5}
	zero.Compute()
	assert.Equal(t, 0.0, zero.MarginPercent)
}

func TestCashReconciliation_Reconcile(t *testing.T) {
	r := &CashReconciliation{
		Date:        time.Date(2026, 4, 2, 21, 15, 0, 0, time.UTC),
		OpeningCash: 2000,
		CashSales:   5400,
		CountedCash: 7300,
		Coins:       80,
	}
	r.Reconcile()

	assert.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, 7400.0, r.ExpectedCash)
	assert.Equal(t, -20.0, r.Difference)
	assert.Equal(t, ReconShort, r.Status)

	r.Coins = 100
	r.Reconcile()
	assert.Equal(t, ReconBalanced, r.Status)

	r.Coins = 150
	r.Reconcile()
	assert.Equal(t, ReconOver, r.Status)
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, 4, PointsFor(450, 100))
	assert.Equal(t, 0, PointsFor(99, 100))
	assert.Equal(t, 0, PointsFor(500, 0))
}

func TestAPIKey_Usable(t *testing.T) {
	now := time.Now()
	k := &APIKey{Active: true, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, k.Usable(now))

	past := now.Add(-time.Minute)
	k.DeprecatedAt = &past
	assert.False(t, k.Usable(now))

	k.DeprecatedAt = nil
	k.Active = false
	assert.False(t, k.Usable(now))
}
