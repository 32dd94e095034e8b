package service

import (
	"context"
	"log/slog"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/repository"
)

// CategoryService handles category CRUD. Categories carry no image assets
// and publish no events, so this is a thin layer over the repository.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, category entity.Category) (entity.Category, error) {
	created, err := s.categories.Insert(ctx, category)
	if err != nil {
		return entity.Category{}, err
	}
	s.logger.Info("Created category", "id", created.ID.Hex())
	return created, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (entity.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// Update resolves the category first so absence surfaces as NotFound before
// any write. The check and the mutation are separate round-trips; a
// concurrent delete in between is a known race the store does not defend.
func (s *CategoryService) Update(ctx context.Context, id string, category entity.Category) (entity.Category, error) {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return entity.Category{}, err
	}

	updated, err := s.categories.Update(ctx, id, category)
	if err != nil {
		return entity.Category{}, err
	}
	s.logger.Info("Updated category", "id", id)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted category", "id", id)
	return nil
}
