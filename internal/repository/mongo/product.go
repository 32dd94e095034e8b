package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/repository"
)

type productRepository struct {
	col *mongo.Collection
}

// NewProductRepository creates a ProductRepository backed by MongoDB.
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{col: db.Collection(productCollection)}
}

func (r *productRepository) Insert(ctx context.Context, product entity.Product) (entity.Product, error) {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	product.Category = nil

	if _, err := r.col.InsertOne(ctx, product); err != nil {
		return entity.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Product{}, entity.ErrProductNotFound
	}

	var product entity.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Product{}, entity.ErrProductNotFound
	}
	if err != nil {
		return entity.Product{}, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, product entity.Product) (entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Product{}, entity.ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":               product.Name,
		"description":        product.Description,
		"image":              product.Image,
		"priceConfiguration": product.PriceConfiguration,
		"attributes":         product.Attributes,
		"tenantId":           product.TenantID,
		"categoryId":         product.CategoryID,
		"isPublish":          product.IsPublish,
		"updatedAt":          time.Now().UTC(),
	}}

	var updated entity.Product
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Product{}, entity.ErrProductNotFound
	}
	if err != nil {
		return entity.Product{}, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.ErrProductNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrProductNotFound
	}
	return nil
}

// Find matches products against the free-text query and filters, joins each
// product's category and pages the result in one aggregation.
func (r *productRepository) Find(ctx context.Context, q string, filter entity.ProductFilter, page entity.PaginateQuery) (entity.Paginated[entity.Product], error) {
	page = page.Normalized()

	match, err := buildProductMatch(q, filter)
	if err != nil {
		return entity.Paginated[entity.Product]{}, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         categoryCollection,
			"localField":   "categoryId",
			"foreignField": "_id",
			"as":           "category",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
		facetStage(page),
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return entity.Paginated[entity.Product]{}, fmt.Errorf("failed to aggregate products: %w", err)
	}
	defer cur.Close(ctx)

	var pages []facetPage[entity.Product]
	if err := cur.All(ctx, &pages); err != nil {
		return entity.Paginated[entity.Product]{}, fmt.Errorf("failed to decode product page: %w", err)
	}
	if len(pages) == 0 {
		return entity.NewPaginated[entity.Product](nil, 0, page), nil
	}
	return pages[0].paginated(page), nil
}

// buildProductMatch translates the filter set into a $match document. An
// unparseable categoryId is a caller mistake, not a server fault.
func buildProductMatch(q string, filter entity.ProductFilter) (bson.M, error) {
	match := bson.M{}
	if q != "" {
		match["name"] = nameMatch(q)
	}
	if filter.TenantID != "" {
		match["tenantId"] = filter.TenantID
	}
	if filter.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.CategoryID)
		if err != nil {
			return nil, entity.Validationf("categoryId is not a valid id")
		}
		match["categoryId"] = oid
	}
	if filter.IsPublish != nil {
		match["isPublish"] = *filter.IsPublish
	}
	return match, nil
}
