package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

func TestInventoryService_StockMovements(t *testing.T) {
	repo := newStubIngredientRepo(&domain.Ingredient{ID: "milk", Name: "Milk", Unit: "l", Quantity: 10, ReorderLevel: 3, OutletID: "o1"})
	svc := NewInventoryService(repo, zerolog.Nop())
	ctx := context.Background()

	ing, err := svc.StockIn(ctx, "o1", "milk", "mgr", ports.StockMovementInput{Quantity: 5, Reason: "delivery"})
	require.NoError(t, err)
	assert.Equal(t, 15.0, ing.Quantity)

	ing, err = svc.StockOut(ctx, "o1", "milk", "mgr", ports.StockMovementInput{Quantity: 13})
	require.NoError(t, err)
	assert.Equal(t, 2.0, ing.Quantity)
	assert.True(t, ing.LowStock())

	_, err = svc.StockOut(ctx, "o1", "milk", "mgr", ports.StockMovementInput{Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.StockIn(ctx, "o1", "milk", "mgr", ports.StockMovementInput{Quantity: 0})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.StockIn(ctx, "o2", "milk", "mgr", ports.StockMovementInput{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrOutletForbidden)

	txs, err := svc.Transactions(ctx, "o1", "milk", 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.StockIn, txs[0].Type)
	assert.Equal(t, 15.0, txs[0].BalanceAfter)
	assert.Equal(t, domain.StockOut, txs[1].Type)
	assert.Equal(t, 2.0, txs[1].BalanceAfter)

	low, err := svc.LowStock(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestInventoryService_ConcurrentStockOutNeverNegative(t *testing.T) {
	repo := newStubIngredientRepo(&domain.Ingredient{ID: "beans", Name: "Beans", Unit: "kg", Quantity: 10, OutletID: "o1"})
	svc := NewInventoryService(repo, zerolog.Nop())

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.StockOut(context.Background(), "o1", "beans", "mgr", ports.StockMovementInput{Quantity: 1}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 0.0, repo.byID["beans"].Quantity)
}

func TestInventoryService_UpdateKeepsQuantity(t *testing.T) {
	repo := newStubIngredientRepo(&domain.Ingredient{ID: "sugar", Name: "Sugar", Unit: "kg", Quantity: 4, OutletID: "o1"})
	svc := NewInventoryService(repo, zerolog.Nop())

	ing, err := svc.Update(context.Background(), "o1", "sugar", ports.IngredientInput{Name: "Brown sugar", Unit: "kg", Quantity: 99, ReorderLevel: 1})
	require.NoError(t, err)
	assert.Equal(t, "Brown sugar", ing.Name)
	assert.Equal(t, 4.0, ing.Quantity)
}
