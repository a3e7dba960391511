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
	"github.com/brewline/cafe-pos/internal/core/ports"
)

const (
	collectionOrders        = "orders"
	collectionOffers        = "offers"
	collectionLoyalty       = "loyalty_accounts"
	collectionLoyaltyLedger = "loyalty_transactions"
)

type OrderRepository struct {
	c collection[domain.Order]
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{c: newCollection[domain.Order](db, collectionOrders, domain.ErrOrderNotFound)}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.c.insert(ctx, o)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.c.findByID(ctx, id)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.c.find(ctx, bson.M{"user_id": userID}, newestFirst("created_at", 0))
}

func (r *OrderRepository) List(ctx context.Context, f ports.ListFilter, status string) ([]*domain.Order, error) {
	filter := scoped(f, "created_at")
	if status != "" {
		filter["status"] = status
	}
	return r.c.find(ctx, filter, newestFirst("created_at", f.Limit))
}

// UpdateStatus only matches while the stored status is still from, so two
// concurrent transitions cannot both apply.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, stampField string, at time.Time) error {
	set := bson.M{"status": to}
	if stampField != "" {
		set[stampField] = at.UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.c.col.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.c.guardFailed(ctx, id, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *OrderRepository) SetPointsAwarded(ctx context.Context, id string, points int) error {
	return r.c.updateByID(ctx, id, bson.M{"$set": bson.M{"points_awarded": points}})
}

type OfferRepository struct {
	c collection[domain.Offer]
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{c: newCollection[domain.Offer](db, collectionOffers, domain.ErrOfferNotFound)}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	if err := r.c.insert(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrOfferExists
		}
		return err
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	return r.c.findByID(ctx, id)
}

func (r *OfferRepository) FindByCode(ctx context.Context, code string) (*domain.Offer, error) {
	return r.c.findOne(ctx, bson.M{"code": code})
}

func (r *OfferRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Offer, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	return r.c.find(ctx, filter, newestFirst("created_at", 0))
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	return r.c.replaceByID(ctx, o.ID, o)
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

// IncrementUsage bumps used_count unless the offer already reached max_uses.
// Offers without a limit store no max_uses field.
func (r *OfferRepository) IncrementUsage(ctx context.Context, id string) error {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"max_uses": bson.M{"$exists": false}},
			bson.M{"max_uses": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$used_count", "$max_uses"}}},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.c.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used_count": 1}})
	if err != nil {
		return fmt.Errorf("increment offer usage: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.c.guardFailed(ctx, id, domain.ErrOfferExhausted)
	}
	return nil
}

// ReleaseUsage decrements used_count, never below zero.
func (r *OfferRepository) ReleaseUsage(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "used_count": bson.M{"$gt": 0}}
	if _, err := r.c.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used_count": -1}}); err != nil {
		return fmt.Errorf("release offer usage: %w", err)
	}
	return nil
}

type LoyaltyRepository struct {
	accounts collection[domain.LoyaltyAccount]
	ledger   collection[domain.LoyaltyTransaction]
}

func NewLoyaltyRepository(db *mongo.Database) *LoyaltyRepository {
	return &LoyaltyRepository{
		accounts: newCollection[domain.LoyaltyAccount](db, collectionLoyalty, domain.ErrAccountNotFound),
		ledger:   newCollection[domain.LoyaltyTransaction](db, collectionLoyaltyLedger, domain.ErrNotFound),
	}
}

func (r *LoyaltyRepository) FindAccount(ctx context.Context, userID string) (*domain.LoyaltyAccount, error) {
	return r.accounts.findByID(ctx, userID)
}

// AddPoints applies delta in one atomic update. Credits upsert the account;
// debits only match when the balance covers them.
func (r *LoyaltyRepository) AddPoints(ctx context.Context, userID string, delta int) (*domain.LoyaltyAccount, error) {
	filter := bson.M{"_id": userID}
	inc := bson.M{"points": delta}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if delta < 0 {
		filter["points"] = bson.M{"$gte": -delta}
	} else {
		inc["lifetime_points"] = delta
		opts.SetUpsert(true)
	}
	update := bson.M{"$inc": inc, "$set": bson.M{"updated_at": time.Now().UTC()}}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc domain.LoyaltyAccount
	if err := r.accounts.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInsufficientPoints
		}
		return nil, fmt.Errorf("add loyalty points: %w", err)
	}
	return &acc, nil
}

func (r *LoyaltyRepository) InsertTransaction(ctx context.Context, tx *domain.LoyaltyTransaction) error {
	return r.ledger.insert(ctx, tx)
}

func (r *LoyaltyRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*domain.LoyaltyTransaction, error) {
	return r.ledger.find(ctx, bson.M{"user_id": userID}, newestFirst("created_at", limit))
}
