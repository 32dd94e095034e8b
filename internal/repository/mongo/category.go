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

type categoryRepository struct {
	col *mongo.Collection
}

// NewCategoryRepository creates a CategoryRepository backed by MongoDB.
func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &categoryRepository{col: db.Collection(categoryCollection)}
}

func (r *categoryRepository) Insert(ctx context.Context, category entity.Category) (entity.Category, error) {
	category.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, category); err != nil {
		return entity.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cur.Close(ctx)

	var categories []entity.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (entity.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Category{}, entity.ErrCategoryNotFound
	}

	var category entity.Category
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Category{}, entity.ErrCategoryNotFound
	}
	if err != nil {
		return entity.Category{}, fmt.Errorf("failed to find category %s: %w", id, err)
	}
	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, category entity.Category) (entity.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Category{}, entity.ErrCategoryNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":               category.Name,
		"priceConfiguration": category.PriceConfiguration,
		"attributes":         category.Attributes,
		"hasToppings":        category.HasToppings,
	}}

	var updated entity.Category
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Category{}, entity.ErrCategoryNotFound
	}
	if err != nil {
		return entity.Category{}, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return updated, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.ErrCategoryNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrCategoryNotFound
	}
	return nil
}
