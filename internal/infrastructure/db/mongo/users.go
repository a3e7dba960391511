package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

const (
	collectionUsers   = "users"
	collectionOutlets = "outlets"
)

// UserRepository stores accounts in the users collection.
type UserRepository struct {
	c collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: newCollection[domain.User](db, collectionUsers, domain.ErrUserNotFound)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.c.insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.c.findByID(ctx, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.c.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.c.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}

func (r *UserRepository) SetRole(ctx context.Context, id, role string) error {
	return r.set(ctx, id, bson.M{"role": role})
}

func (r *UserRepository) SetOutlets(ctx context.Context, id string, outletIDs []string) error {
	return r.set(ctx, id, bson.M{"outlet_ids": outletIDs})
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(ctx, id, bson.M{"active": active})
}

func (r *UserRepository) set(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	return r.c.updateByID(ctx, id, bson.M{"$set": fields})
}

// OutletRepository stores outlets.
type OutletRepository struct {
	c collection[domain.Outlet]
}

func NewOutletRepository(db *mongo.Database) *OutletRepository {
	return &OutletRepository{c: newCollection[domain.Outlet](db, collectionOutlets, domain.ErrOutletNotFound)}
}

func (r *OutletRepository) Create(ctx context.Context, o *domain.Outlet) error {
	if err := r.c.insert(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrOutletExists, strings.ToUpper(o.Code))
		}
		return err
	}
	return nil
}

func (r *OutletRepository) FindByID(ctx context.Context, id string) (*domain.Outlet, error) {
	return r.c.findByID(ctx, id)
}

func (r *OutletRepository) List(ctx context.Context) ([]*domain.Outlet, error) {
	return r.c.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *OutletRepository) Update(ctx context.Context, o *domain.Outlet) error {
	return r.c.replaceByID(ctx, o.ID, o)
}
