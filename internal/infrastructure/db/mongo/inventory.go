package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

const (
	collectionIngredients = "ingredients"
	collectionStockTx     = "stock_transactions"
)

type IngredientRepository struct {
	c   collection[domain.Ingredient]
	txs collection[domain.StockTransaction]
}

func NewIngredientRepository(db *mongo.Database) *IngredientRepository {
	return &IngredientRepository{
		c:   newCollection[domain.Ingredient](db, collectionIngredients, domain.ErrIngredientNotFound),
		txs: newCollection[domain.StockTransaction](db, collectionStockTx, domain.ErrNotFound),
	}
}

func (r *IngredientRepository) Create(ctx context.Context, i *domain.Ingredient) error {
	return r.c.insert(ctx, i)
}

func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	return r.c.findByID(ctx, id)
}

func (r *IngredientRepository) List(ctx context.Context, outletID string) ([]*domain.Ingredient, error) {
	return r.c.find(ctx, outletFilter(outletID), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// ListLowStock compares two fields of the same document, hence $expr.
func (r *IngredientRepository) ListLowStock(ctx context.Context, outletID string) ([]*domain.Ingredient, error) {
	filter := outletFilter(outletID)
	filter["$expr"] = bson.M{"$lte": bson.A{"$quantity", "$reorder_level"}}
	return r.c.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "quantity", Value: 1}}))
}

func (r *IngredientRepository) Update(ctx context.Context, i *domain.Ingredient) error {
	update := bson.M{"$set": bson.M{
		"name":          i.Name,
		"unit":          i.Unit,
		"reorder_level": i.ReorderLevel,
		"cost_per_unit": i.CostPerUnit,
		"updated_at":    i.UpdatedAt,
	}}
	return r.c.updateByID(ctx, i.ID, update)
}

func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

// AdjustQuantity applies delta with a single $inc. A withdrawal only matches
// while quantity >= amount, so concurrent stock-outs cannot overdraw.
func (r *IngredientRepository) AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.Ingredient, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ing domain.Ingredient
	if err := r.c.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.c.guardFailed(ctx, id, domain.ErrInsufficientStock)
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &ing, nil
}

func (r *IngredientRepository) InsertTransaction(ctx context.Context, tx *domain.StockTransaction) error {
	return r.txs.insert(ctx, tx)
}

func (r *IngredientRepository) ListTransactions(ctx context.Context, ingredientID string, limit int) ([]*domain.StockTransaction, error) {
	return r.txs.find(ctx, bson.M{"ingredient_id": ingredientID}, newestFirst("created_at", limit))
}

func outletFilter(outletID string) bson.M {
	filter := bson.M{}
	if outletID != "" {
		filter["outlet_id"] = outletID
	}
	return filter
}
