package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/repository"
	"github.com/orderhub/catalog-service/internal/storage"
)

// ProductService orchestrates product mutations with the image lifecycle in
// object storage. Side effects are sequenced so a product document never
// references a missing image; orphaned images are the accepted failure mode
// under partial failure, never dangling references.
type ProductService struct {
	products repository.ProductRepository
	storage  storage.FileStorage
	logger   *slog.Logger
}

func NewProductService(products repository.ProductRepository, fileStorage storage.FileStorage, logger *slog.Logger) *ProductService {
	return &ProductService{products: products, storage: fileStorage, logger: logger}
}

// Create uploads the image under a fresh key, then persists the document
// referencing it. If the persist fails the uploaded object is orphaned;
// there is no compensating delete.
func (s *ProductService) Create(ctx context.Context, product entity.Product, image []byte) (entity.Product, error) {
	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image); err != nil {
		return entity.Product{}, fmt.Errorf("failed to upload product image: %w", err)
	}

	product.Image = imageKey
	created, err := s.products.Insert(ctx, product)
	if err != nil {
		return entity.Product{}, err
	}

	s.logger.Info("Created product", "id", created.ID.Hex(), "tenant", created.TenantID)
	return created, nil
}

// Update replaces the product's fields after an authorization check against
// the stored tenant. A new image is uploaded before the old key is deleted,
// so the store always holds at least one valid image for the product.
func (s *ProductService) Update(ctx context.Context, id string, product entity.Product, image []byte, actor entity.AccessClaims) (entity.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return entity.Product{}, err
	}
	if !actor.CanModify(existing.TenantID) {
		return entity.Product{}, entity.ErrForbidden
	}

	imageKey := existing.Image
	if image != nil {
		imageKey = uuid.New().String()
		if err := s.storage.Upload(ctx, imageKey, image); err != nil {
			return entity.Product{}, fmt.Errorf("failed to upload product image: %w", err)
		}
		if err := s.storage.Delete(ctx, existing.Image); err != nil {
			s.logger.Error("Failed to delete replaced product image", "key", existing.Image, "err", err)
		}
	}

	product.Image = imageKey
	updated, err := s.products.Update(ctx, id, product)
	if err != nil {
		return entity.Product{}, err
	}

	s.logger.Info("Updated product", "id", id)
	return updated, nil
}

// Delete removes the document first, then its image. A crash in between
// leaves an orphaned object, never a product pointing at nothing.
func (s *ProductService) Delete(ctx context.Context, id string, actor entity.AccessClaims) error {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(existing.TenantID) {
		return entity.ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, existing.Image); err != nil {
		s.logger.Error("Failed to delete product image", "key", existing.Image, "err", err)
	}

	s.logger.Info("Deleted product", "id", id)
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (entity.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return entity.Product{}, err
	}
	if err := s.resolveImage(&product); err != nil {
		return entity.Product{}, err
	}
	return product, nil
}

// List runs the filtered, paginated aggregation and resolves every image key
// to its public URI. URI resolution is pure; a failure there means the
// service is misconfigured and the whole request fails.
func (s *ProductService) List(ctx context.Context, q string, filter entity.ProductFilter, page entity.PaginateQuery) (entity.Paginated[entity.Product], error) {
	result, err := s.products.Find(ctx, q, filter, page)
	if err != nil {
		return entity.Paginated[entity.Product]{}, err
	}
	for i := range result.Data {
		if err := s.resolveImage(&result.Data[i]); err != nil {
			return entity.Paginated[entity.Product]{}, err
		}
	}
	return result, nil
}

func (s *ProductService) resolveImage(product *entity.Product) error {
	uri, err := s.storage.ObjectURI(product.Image)
	if err != nil {
		return err
	}
	product.Image = uri
	return nil
}
