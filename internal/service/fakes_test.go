package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderhub/catalog-service/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// callLog records the order of side-effecting calls across fakes so tests
// can assert sequencing (e.g. upload-before-insert, document-before-asset).
type callLog struct {
	calls []string
}

func (l *callLog) record(call string) {
	l.calls = append(l.calls, call)
}

type fakeStorage struct {
	log       *callLog
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	uriErr    error
}

func newFakeStorage(log *callLog) *fakeStorage {
	return &fakeStorage{log: log, objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte) error {
	f.log.record("storage.upload")
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.log.record("storage.delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) ObjectURI(key string) (string, error) {
	if f.uriErr != nil {
		return "", f.uriErr
	}
	return "https://test-bucket.s3.eu-west-1.amazonaws.com/" + key, nil
}

func (f *fakeStorage) has(key string) bool {
	_, ok := f.objects[key]
	return ok
}

type fakeProductRepo struct {
	log       *callLog
	products  map[string]entity.Product
	insertErr error
	updateErr error
	findPage  entity.Paginated[entity.Product]
}

func newFakeProductRepo(log *callLog) *fakeProductRepo {
	return &fakeProductRepo{log: log, products: make(map[string]entity.Product)}
}

func (f *fakeProductRepo) Insert(_ context.Context, product entity.Product) (entity.Product, error) {
	f.log.record("repo.insert")
	if f.insertErr != nil {
		return entity.Product{}, f.insertErr
	}
	product.ID = primitive.NewObjectID()
	f.products[product.ID.Hex()] = product
	return product, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (entity.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return entity.Product{}, entity.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, product entity.Product) (entity.Product, error) {
	f.log.record("repo.update")
	if f.updateErr != nil {
		return entity.Product{}, f.updateErr
	}
	existing, ok := f.products[id]
	if !ok {
		return entity.Product{}, entity.ErrProductNotFound
	}
	product.ID = existing.ID
	f.products[id] = product
	return product, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.log.record("repo.delete")
	if _, ok := f.products[id]; !ok {
		return entity.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Find(_ context.Context, _ string, _ entity.ProductFilter, _ entity.PaginateQuery) (entity.Paginated[entity.Product], error) {
	return f.findPage, nil
}

type fakeToppingRepo struct {
	log      *callLog
	toppings map[string]entity.Topping
	findPage entity.Paginated[entity.Topping]
}

func newFakeToppingRepo(log *callLog) *fakeToppingRepo {
	return &fakeToppingRepo{log: log, toppings: make(map[string]entity.Topping)}
}

func (f *fakeToppingRepo) Insert(_ context.Context, topping entity.Topping) (entity.Topping, error) {
	f.log.record("repo.insert")
	topping.ID = primitive.NewObjectID()
	f.toppings[topping.ID.Hex()] = topping
	return topping, nil
}

func (f *fakeToppingRepo) FindByID(_ context.Context, id string) (entity.Topping, error) {
	topping, ok := f.toppings[id]
	if !ok {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	return topping, nil
}

func (f *fakeToppingRepo) Update(_ context.Context, id string, topping entity.Topping) (entity.Topping, error) {
	f.log.record("repo.update")
	existing, ok := f.toppings[id]
	if !ok {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	topping.ID = existing.ID
	f.toppings[id] = topping
	return topping, nil
}

func (f *fakeToppingRepo) Delete(_ context.Context, id string) error {
	f.log.record("repo.delete")
	if _, ok := f.toppings[id]; !ok {
		return entity.ErrToppingNotFound
	}
	delete(f.toppings, id)
	return nil
}

func (f *fakeToppingRepo) Find(_ context.Context, _ entity.ToppingFilter, _ entity.PaginateQuery) (entity.Paginated[entity.Topping], error) {
	return f.findPage, nil
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

type fakePublisher struct {
	log        *callLog
	published  []publishedEvent
	publishErr error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic string, key string, event any) error {
	f.log.record("broker.publish")
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

var errUpstream = errors.New("upstream unavailable")
