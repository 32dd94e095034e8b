package repository

import (
	"context"

	"github.com/orderhub/catalog-service/internal/entity"
)

// CategoryRepository handles persistence for Categories. Listing is a full
// scan; category cardinality is small enough that pagination is not worth it.
type CategoryRepository interface {
	Insert(ctx context.Context, category entity.Category) (entity.Category, error)
	FindAll(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id string) (entity.Category, error)
	Update(ctx context.Context, id string, category entity.Category) (entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository handles persistence for Products. Find runs a
// match-then-paginate aggregation and joins each product's category.
type ProductRepository interface {
	Insert(ctx context.Context, product entity.Product) (entity.Product, error)
	FindByID(ctx context.Context, id string) (entity.Product, error)
	Update(ctx context.Context, id string, product entity.Product) (entity.Product, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q string, filter entity.ProductFilter, page entity.PaginateQuery) (entity.Paginated[entity.Product], error)
}

// ToppingRepository handles persistence for Toppings.
type ToppingRepository interface {
	Insert(ctx context.Context, topping entity.Topping) (entity.Topping, error)
	FindByID(ctx context.Context, id string) (entity.Topping, error)
	Update(ctx context.Context, id string, topping entity.Topping) (entity.Topping, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter entity.ToppingFilter, page entity.PaginateQuery) (entity.Paginated[entity.Topping], error)
}
