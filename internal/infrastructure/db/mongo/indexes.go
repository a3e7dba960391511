package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes every collection relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	plan := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collectionOutlets: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		collectionOffers: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		collectionReconciliations: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
		},
		collectionCategories: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "sort_order", Value: 1}}},
		},
		collectionMenuItems: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "category_id", Value: 1}}},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionIngredients: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		collectionStockTx: {
			{Keys: bson.D{{Key: "ingredient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionSales: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		collectionExpenses: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		collectionOnlineOrders: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "platform", Value: 1}, {Key: "date", Value: -1}}},
		},
		collectionLoyaltyLedger: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionAuditLogs: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
