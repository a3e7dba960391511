package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brewline/cafe-pos/internal/core/ports"
)

// collection is a typed wrapper over a mongo collection whose documents use a
// string _id. notFound is returned whenever a lookup by id matches nothing.
type collection[T any] struct {
	col      *mongo.Collection
	notFound error
}

func newCollection[T any](db *mongo.Database, name string, notFound error) collection[T] {
	return collection[T]{col: db.Collection(name), notFound: notFound}
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c collection[T]) insertMany(ctx context.Context, docs []*T) error {
	if len(docs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	if _, err := c.col.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("insert many %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter interface{}) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, c.notFound
		}
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	return &doc, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c collection[T]) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c collection[T]) replaceByID(ctx context.Context, id string, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c collection[T]) updateByID(ctx context.Context, id string, update interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}

// exists reports whether a document with id is stored; used to tell a missing
// document from a failed guard after a conditional update.
func (c collection[T]) exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := c.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count %s: %w", c.col.Name(), err)
	}
	return n > 0, nil
}

// guardFailed converts an unmatched conditional update into the right error.
func (c collection[T]) guardFailed(ctx context.Context, id string, guardErr error) error {
	ok, err := c.exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return c.notFound
	}
	return guardErr
}

func aggregate[R any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]R, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", col.Name(), err)
	}
	out := []R{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s aggregate: %w", col.Name(), err)
	}
	return out, nil
}

// scoped builds the outlet and date range filter shared by list queries.
func scoped(f ports.ListFilter, dateField string) bson.M {
	filter := bson.M{}
	if f.OutletID != "" {
		filter["outlet_id"] = f.OutletID
	}
	if dateField != "" && (!f.From.IsZero() || !f.To.IsZero()) {
		rng := bson.M{}
		if !f.From.IsZero() {
			rng["$gte"] = f.From.UTC()
		}
		if !f.To.IsZero() {
			rng["$lte"] = f.To.UTC()
		}
		filter[dateField] = rng
	}
	return filter
}

func newestFirst(field string, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

// dailySum groups matched documents by calendar day of dateField and sums
// amountField.
func dailySum(match bson.M, dateField, amountField string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$" + dateField}}},
			{Key: "total", Value: bson.M{"$sum": "$" + amountField}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
