package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

const (
	collectionCategories = "categories"
	collectionMenuItems  = "menu_items"
)

type CategoryRepository struct {
	c collection[domain.Category]
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{c: newCollection[domain.Category](db, collectionCategories, domain.ErrCategoryNotFound)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.c.insert(ctx, c)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.c.findByID(ctx, id)
}

// List returns categories ordered for display. An empty outletID lists all.
func (r *CategoryRepository) List(ctx context.Context, outletID string) ([]*domain.Category, error) {
	filter := bson.M{}
	if outletID != "" {
		filter["outlet_id"] = outletID
	}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}})
	return r.c.find(ctx, filter, opts)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.c.replaceByID(ctx, c.ID, c)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

type MenuRepository struct {
	c collection[domain.MenuItem]
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{c: newCollection[domain.MenuItem](db, collectionMenuItems, domain.ErrMenuItemNotFound)}
}

func (r *MenuRepository) Create(ctx context.Context, m *domain.MenuItem) error {
	return r.c.insert(ctx, m)
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	return r.c.findByID(ctx, id)
}

func (r *MenuRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.MenuItem, error) {
	if len(ids) == 0 {
		return []*domain.MenuItem{}, nil
	}
	return r.c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MenuRepository) List(ctx context.Context, outletID, categoryID string, onlyAvailable bool) ([]*domain.MenuItem, error) {
	filter := bson.M{}
	if outletID != "" {
		filter["outlet_id"] = outletID
	}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	if onlyAvailable {
		filter["available"] = true
	}
	return r.c.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *MenuRepository) Update(ctx context.Context, m *domain.MenuItem) error {
	return r.c.replaceByID(ctx, m.ID, m)
}

func (r *MenuRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.c.updateByID(ctx, id, bson.M{"$set": bson.M{"available": available, "updated_at": time.Now().UTC()}})
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
