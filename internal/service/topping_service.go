package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/messaging"
	"github.com/orderhub/catalog-service/internal/repository"
	"github.com/orderhub/catalog-service/internal/storage"
)

// ToppingService mirrors ProductService without the category relation, and
// additionally publishes a domain event after every persisted create and
// update. The document store is the source of truth: publication happens
// strictly after the write succeeds, and a publish failure never fails the
// request — it is logged and the downstream consumer catches up from a later
// event. Deletes publish nothing.
type ToppingService struct {
	toppings  repository.ToppingRepository
	storage   storage.FileStorage
	publisher messaging.Publisher
	topic     string
	logger    *slog.Logger
}

func NewToppingService(
	toppings repository.ToppingRepository,
	fileStorage storage.FileStorage,
	publisher messaging.Publisher,
	topic string,
	logger *slog.Logger,
) *ToppingService {
	return &ToppingService{
		toppings:  toppings,
		storage:   fileStorage,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Create uploads the image, persists the topping and then publishes
// TOPPING_CREATE.
func (s *ToppingService) Create(ctx context.Context, topping entity.Topping, image []byte) (entity.Topping, error) {
	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image); err != nil {
		return entity.Topping{}, fmt.Errorf("failed to upload topping image: %w", err)
	}

	topping.Image = imageKey
	created, err := s.toppings.Insert(ctx, topping)
	if err != nil {
		return entity.Topping{}, err
	}

	s.logger.Info("Created topping", "id", created.ID.Hex(), "tenant", created.TenantID)
	s.publish(ctx, entity.EventToppingCreate, created)
	return created, nil
}

// Update follows the product update sequence (authz, new-then-old image,
// persist) and then publishes TOPPING_UPDATE.
func (s *ToppingService) Update(ctx context.Context, id string, topping entity.Topping, image []byte, actor entity.AccessClaims) (entity.Topping, error) {
	existing, err := s.toppings.FindByID(ctx, id)
	if err != nil {
		return entity.Topping{}, err
	}
	if !actor.CanModify(existing.TenantID) {
		return entity.Topping{}, entity.ErrForbidden
	}

	imageKey := existing.Image
	if image != nil {
		imageKey = uuid.New().String()
		if err := s.storage.Upload(ctx, imageKey, image); err != nil {
			return entity.Topping{}, fmt.Errorf("failed to upload topping image: %w", err)
		}
		if err := s.storage.Delete(ctx, existing.Image); err != nil {
			s.logger.Error("Failed to delete replaced topping image", "key", existing.Image, "err", err)
		}
	}

	topping.Image = imageKey
	updated, err := s.toppings.Update(ctx, id, topping)
	if err != nil {
		return entity.Topping{}, err
	}

	s.logger.Info("Updated topping", "id", id)
	s.publish(ctx, entity.EventToppingUpdate, updated)
	return updated, nil
}

func (s *ToppingService) Delete(ctx context.Context, id string, actor entity.AccessClaims) error {
	existing, err := s.toppings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(existing.TenantID) {
		return entity.ErrForbidden
	}

	if err := s.toppings.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, existing.Image); err != nil {
		s.logger.Error("Failed to delete topping image", "key", existing.Image, "err", err)
	}

	s.logger.Info("Deleted topping", "id", id)
	return nil
}

func (s *ToppingService) GetByID(ctx context.Context, id string) (entity.Topping, error) {
	topping, err := s.toppings.FindByID(ctx, id)
	if err != nil {
		return entity.Topping{}, err
	}
	if err := s.resolveImage(&topping); err != nil {
		return entity.Topping{}, err
	}
	return topping, nil
}

func (s *ToppingService) List(ctx context.Context, filter entity.ToppingFilter, page entity.PaginateQuery) (entity.Paginated[entity.Topping], error) {
	result, err := s.toppings.Find(ctx, filter, page)
	if err != nil {
		return entity.Paginated[entity.Topping]{}, err
	}
	for i := range result.Data {
		if err := s.resolveImage(&result.Data[i]); err != nil {
			return entity.Paginated[entity.Topping]{}, err
		}
	}
	return result, nil
}

func (s *ToppingService) publish(ctx context.Context, eventType string, topping entity.Topping) {
	event := entity.ToppingEvent{
		EventType: eventType,
		Data: entity.ToppingEventData{
			ID:       topping.ID.Hex(),
			Price:    topping.Price,
			TenantID: topping.TenantID,
		},
	}
	if err := s.publisher.PublishEvent(ctx, s.topic, topping.ID.Hex(), event); err != nil {
		s.logger.Error("Failed to publish topping event", "event", eventType, "id", topping.ID.Hex(), "err", err)
	}
}

func (s *ToppingService) resolveImage(topping *entity.Topping) error {
	uri, err := s.storage.ObjectURI(topping.Image)
	if err != nil {
		return err
	}
	topping.Image = uri
	return nil
}
