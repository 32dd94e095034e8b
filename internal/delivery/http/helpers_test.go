package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/service"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func token(t *testing.T, role, tenant string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "user-1",
		"role":   role,
		"tenant": tenant,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// --- in-memory collaborators ---

type memCategoryRepo struct {
	categories map[string]entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[string]entity.Category)}
}

func (r *memCategoryRepo) Insert(_ context.Context, category entity.Category) (entity.Category, error) {
	category.ID = primitive.NewObjectID()
	r.categories[category.ID.Hex()] = category
	return category, nil
}

func (r *memCategoryRepo) FindAll(_ context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id string) (entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return entity.Category{}, entity.ErrCategoryNotFound
	}
	return category, nil
}

func (r *memCategoryRepo) Update(_ context.Context, id string, category entity.Category) (entity.Category, error) {
	existing, ok := r.categories[id]
	if !ok {
		return entity.Category{}, entity.ErrCategoryNotFound
	}
	category.ID = existing.ID
	r.categories[id] = category
	return category, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return entity.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type memProductRepo struct {
	products map[string]entity.Product
	findPage entity.Paginated[entity.Product]
	lastPage entity.PaginateQuery
	lastQ    string
	lastFil  entity.ProductFilter
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]entity.Product)}
}

func (r *memProductRepo) Insert(_ context.Context, product entity.Product) (entity.Product, error) {
	product.ID = primitive.NewObjectID()
	r.products[product.ID.Hex()] = product
	return product, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return entity.Product{}, entity.ErrProductNotFound
	}
	return product, nil
}

func (r *memProductRepo) Update(_ context.Context, id string, product entity.Product) (entity.Product, error) {
	existing, ok := r.products[id]
	if !ok {
		return entity.Product{}, entity.ErrProductNotFound
	}
	product.ID = existing.ID
	r.products[id] = product
	return product, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return entity.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Find(_ context.Context, q string, filter entity.ProductFilter, page entity.PaginateQuery) (entity.Paginated[entity.Product], error) {
	r.lastQ, r.lastFil, r.lastPage = q, filter, page
	return r.findPage, nil
}

type memToppingRepo struct {
	toppings map[string]entity.Topping
	findPage entity.Paginated[entity.Topping]
}

func newMemToppingRepo() *memToppingRepo {
	return &memToppingRepo{toppings: make(map[string]entity.Topping)}
}

func (r *memToppingRepo) Insert(_ context.Context, topping entity.Topping) (entity.Topping, error) {
	topping.ID = primitive.NewObjectID()
	r.toppings[topping.ID.Hex()] = topping
	return topping, nil
}

func (r *memToppingRepo) FindByID(_ context.Context, id string) (entity.Topping, error) {
	topping, ok := r.toppings[id]
	if !ok {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	return topping, nil
}

func (r *memToppingRepo) Update(_ context.Context, id string, topping entity.Topping) (entity.Topping, error) {
	existing, ok := r.toppings[id]
	if !ok {
		return entity.Topping{}, entity.ErrToppingNotFound
	}
	topping.ID = existing.ID
	r.toppings[id] = topping
	return topping, nil
}

func (r *memToppingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.toppings[id]; !ok {
		return entity.ErrToppingNotFound
	}
	delete(r.toppings, id)
	return nil
}

func (r *memToppingRepo) Find(_ context.Context, _ entity.ToppingFilter, _ entity.PaginateQuery) (entity.Paginated[entity.Topping], error) {
	return r.findPage, nil
}

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (s *memStorage) Upload(_ context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) ObjectURI(key string) (string, error) {
	return "https://test-bucket.s3.eu-west-1.amazonaws.com/" + key, nil
}

type memPublisher struct {
	events []any
}

func (p *memPublisher) PublishEvent(_ context.Context, _ string, _ string, event any) error {
	p.events = append(p.events, event)
	return nil
}

type testEnv struct {
	router     *gin.Engine
	categories *memCategoryRepo
	products   *memProductRepo
	toppings   *memToppingRepo
	storage    *memStorage
	publisher  *memPublisher
}

func newTestEnv() *testEnv {
	env := &testEnv{
		categories: newMemCategoryRepo(),
		products:   newMemProductRepo(),
		toppings:   newMemToppingRepo(),
		storage:    newMemStorage(),
		publisher:  &memPublisher{},
	}
	logger := testLogger()
	env.router = NewRouter(
		RouterConfig{JWTSecret: testSecret, AllowedOrigins: []string{"http://localhost:3000"}},
		service.NewCategoryService(env.categories, logger),
		service.NewProductService(env.products, env.storage, logger),
		service.NewToppingService(env.toppings, env.storage, env.publisher, "topping", logger),
		logger,
	)
	return env
}

// multipartBody builds a multipart form with the given fields plus an image
// file when imageData is non-nil.
func multipartBody(t *testing.T, fields map[string]string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageData != nil {
		fw, err := w.CreateFormFile("image", "image.png")
		require.NoError(t, err)
		_, err = fw.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
