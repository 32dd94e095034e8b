package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderhub/catalog-service/internal/entity"
)

func validProductFields() map[string]string {
	return map[string]string{
		"name":               "Margherita",
		"description":        "Classic cheese pizza",
		"priceConfiguration": `{"Size": {"priceType": "base", "availableOptions": {"Small": 400, "Large": 600}}}`,
		"attributes":         `[{"name": "isHit", "value": true}]`,
		"tenantId":           "t1",
		"categoryId":         primitive.NewObjectID().Hex(),
		"isPublish":          "true",
	}
}

func TestProductCreate(t *testing.T) {
	env := newTestEnv()

	body, contentType := multipartBody(t, validProductFields(), []byte("png-bytes"))
	w := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPost, "/products", body), token(t, "manager", "t1"))
	req.Header.Set("Content-Type", contentType)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])

	stored := env.products.products[resp["id"]]
	assert.Equal(t, "Margherita", stored.Name)
	assert.Equal(t, "t1", stored.TenantID)
	assert.True(t, stored.IsPublish)
	assert.Equal(t, entity.PriceTypeBase, stored.PriceConfiguration["Size"].PriceType)

	// The stored key must reference a live object.
	_, ok := env.storage.objects[stored.Image]
	assert.True(t, ok)
}

func TestProductCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fields map[string]string)
		noImage bool
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(f map[string]string) { delete(f, "name") },
			message: "name is required",
		},
		{
			name:    "missing tenant",
			mutate:  func(f map[string]string) { delete(f, "tenantId") },
			message: "tenantId is required",
		},
		{
			name:    "bad price configuration json",
			mutate:  func(f map[string]string) { f["priceConfiguration"] = "{" },
			message: "priceConfiguration is not valid json",
		},
		{
			name:    "bad price type",
			mutate:  func(f map[string]string) { f["priceConfiguration"] = `{"Size": {"priceType": "x", "availableOptions": {"S": 1}}}` },
			message: "priceType must be one of [base additional]",
		},
		{
			name:    "bad category id",
			mutate:  func(f map[string]string) { f["categoryId"] = "nope" },
			message: "categoryId is not a valid id",
		},
		{
			name:    "missing image",
			mutate:  func(f map[string]string) {},
			noImage: true,
			message: "image is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			fields := validProductFields()
			tt.mutate(fields)
			var image []byte
			if !tt.noImage {
				image = []byte("png")
			}
			body, contentType := multipartBody(t, fields, image)

			w := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPost, "/products", body), token(t, "admin", "t1"))
			req.Header.Set("Content-Type", contentType)
			env.router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp["error"])
			assert.Empty(t, env.products.products)
		})
	}
}

func TestProductUpdateForbiddenForOtherTenant(t *testing.T) {
	env := newTestEnv()
	created, err := env.products.Insert(t.Context(), entity.Product{Name: "Margherita", TenantID: "t1", Image: "key-1"})
	require.NoError(t, err)
	env.storage.objects["key-1"] = []byte("png")

	body, contentType := multipartBody(t, validProductFields(), nil)
	w := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPut, "/products/"+created.ID.Hex(), body), token(t, "manager", "t2"))
	req.Header.Set("Content-Type", contentType)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	// No mutation, no storage traffic.
	assert.Equal(t, "Margherita", env.products.products[created.ID.Hex()].Name)
	assert.Len(t, env.storage.objects, 1)
}

func TestProductGetAllPagination(t *testing.T) {
	env := newTestEnv()
	env.products.findPage = entity.NewPaginated([]entity.Product{
		{Name: "One", Image: "key-1"},
	}, 25, entity.PaginateQuery{Page: 2, Limit: 10})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?page=2&limit=10&q=piz&tenantId=t1&isPublish=true", nil)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Filters and paging reach the repository as parsed.
	assert.Equal(t, "piz", env.products.lastQ)
	assert.Equal(t, "t1", env.products.lastFil.TenantID)
	require.NotNil(t, env.products.lastFil.IsPublish)
	assert.True(t, *env.products.lastFil.IsPublish)
	assert.Equal(t, entity.PaginateQuery{Page: 2, Limit: 10}, env.products.lastPage)

	var resp struct {
		Data        []entity.Product `json:"data"`
		Total       int64            `json:"total"`
		CurrentPage int              `json:"currentPage"`
		TotalPages  int              `json:"totalPages"`
		PerPage     int              `json:"perPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 10, resp.PerPage)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://test-bucket.s3.eu-west-1.amazonaws.com/key-1", resp.Data[0].Image)
}

func TestProductGetAllRejectsBadIsPublish(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?isPublish=maybe", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductDelete(t *testing.T) {
	env := newTestEnv()
	created, err := env.products.Insert(t.Context(), entity.Product{Name: "Margherita", TenantID: "t1", Image: "key-1"})
	require.NoError(t, err)
	env.storage.objects["key-1"] = []byte("png")

	w := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodDelete, "/products/"+created.ID.Hex(), nil), token(t, "manager", "t1"))
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.products.products)
	assert.Empty(t, env.storage.objects)
}

func TestProductGetOneNotFound(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
