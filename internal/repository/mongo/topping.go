package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/repository"
)

type toppingRepository struct {
	col *mongo.Collection
}

// NewToppingRepository creates a ToppingRepository backed by MongoDB.
func NewToppingRepository(db *mongo.Database) repository.ToppingRepository {
	return &toppingRepository{col: db.Collection(toppingCollection)}
}

func (r *toppingRepository) Insert(ctx context.Context, topping entity.Topping) (entity.Topping, error) {
	topping.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, topping); err != nil {
		return entity.Topping{}, fmt.Errorf("failed to insert topping: %w", err)
	}
	return topping, nil
}

func (r *toppingRepository) FindByID(ctx context.Context, id string) (entity.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Topping{}, entity.ErrToppingNotFound
	}

	var topping entity.Topping
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&topping)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	if err != nil {
		return entity.Topping{}, fmt.Errorf("failed to find topping %s: %w", id, err)
	}
	return topping, nil
}

func (r *toppingRepository) Update(ctx context.Context, id string, topping entity.Topping) (entity.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Topping{}, entity.ErrToppingNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":     topping.Name,
		"price":    topping.Price,
		"image":    topping.Image,
		"tenantId": topping.TenantID,
	}}

	var updated entity.Topping
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	if err != nil {
		return entity.Topping{}, fmt.Errorf("failed to update topping %s: %w", id, err)
	}
	return updated, nil
}

func (r *toppingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.ErrToppingNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete topping %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrToppingNotFound
	}
	return nil
}

// Find pages toppings matching the tenant filter.
func (r *toppingRepository) Find(ctx context.Context, filter entity.ToppingFilter, page entity.PaginateQuery) (entity.Paginated[entity.Topping], error) {
	page = page.Normalized()

	match := bson.M{}
	if filter.TenantID != "" {
		match["tenantId"] = filter.TenantID
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		facetStage(page),
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return entity.Paginated[entity.Topping]{}, fmt.Errorf("failed to aggregate toppings: %w", err)
	}
	defer cur.Close(ctx)

	var pages []facetPage[entity.Topping]
	if err := cur.All(ctx, &pages); err != nil {
		return entity.Paginated[entity.Topping]{}, fmt.Errorf("failed to decode topping page: %w", err)
	}
	if len(pages) == 0 {
		return entity.NewPaginated[entity.Topping](nil, 0, page), nil
	}
	return pages[0].paginated(page), nil
}
