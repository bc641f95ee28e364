package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo/memory"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer/committertest"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// emptyProductRepo builds real mutations but stores nothing.
type emptyProductRepo struct {
	contracts.ProductRepository
}

func (emptyProductRepo) GetByID(context.Context, int64) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func newProductRouter(rec *committertest.Recorder, rm *memory.ReadModel) *gin.Engine {
	products := emptyProductRepo{repo.NewProductRepo((*spanner.Client)(nil))}
	outboxRepo := outbox.NewRepo()
	clk := clock.NewMockClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))

	h := NewProductHandler(
		create_product.NewInteractor(products, outboxRepo, rec, idgen.NewSequence(500), clk),
		update_product.NewInteractor(products, outboxRepo, rec, clk),
		delete_product.NewInteractor(products, outboxRepo, rec, clk),
		get_product.NewQuery(rm),
		list_products.NewQuery(rm),
		zap.NewNop(),
	)
	return NewRouter(Handlers{Products: h}, zap.NewNop(), nil)
}

func send(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProducts_Create(t *testing.T) {
	rec := &committertest.Recorder{}
	router := newProductRouter(rec, memory.NewReadModel())

	resp := send(t, router, http.MethodPost, "/api/products",
		`{"name":"Pallet Jack","price":"349.99","stock":2,"category":"Warehouse"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var dto contracts.ProductDTO
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
	assert.Equal(t, int64(500), dto.ID)
	assert.Equal(t, "Pallet Jack", dto.Name)
	assert.Equal(t, "349.99", dto.Price.String())
	require.NotNil(t, rec.Last())
}

func TestProducts_CreateValidation(t *testing.T) {
	rec := &committertest.Recorder{}
	router := newProductRouter(rec, memory.NewReadModel())

	resp := send(t, router, http.MethodPost, "/api/products", `{"name":"","price":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"product name cannot be empty"}`, resp.Body.String())

	resp = send(t, router, http.MethodPost, "/api/products", `{"name":"Crate","price":1,"stock":-3}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = send(t, router, http.MethodPost, "/api/products", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Nil(t, rec.Last(), "nothing committed")
}

func TestProducts_GetAndList(t *testing.T) {
	router := newProductRouter(&committertest.Recorder{}, memory.NewReadModel(inventory()...))

	resp := send(t, router, http.MethodGet, "/api/products/3", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var dto contracts.ProductDTO
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
	assert.Equal(t, "Blue Widget 3", dto.Name)
	assert.Equal(t, domain.AdminPlaceholderImage, dto.Image)

	resp = send(t, router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var list contracts.ProductList
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Len(t, list.Data, 12)
	assert.Equal(t, contracts.Pagination{Total: 12, Pages: 1, Page: 1, Limit: 100}, list.Pagination)
}

func TestProducts_InvalidAndMissingIDs(t *testing.T) {
	router := newProductRouter(&committertest.Recorder{}, memory.NewReadModel())

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/api/products/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/api/products/0", "", http.StatusBadRequest},
		{http.MethodGet, "/api/products/99", "", http.StatusNotFound},
		{http.MethodPut, "/api/products/99", `{"name":"Crate","price":1}`, http.StatusNotFound},
		{http.MethodDelete, "/api/products/99", "", http.StatusNotFound},
		{http.MethodDelete, "/api/products/x", "", http.StatusBadRequest},
		{http.MethodGet, "/api/products?page=92233720368547760", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp := send(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, resp.Code, resp.Body.String())
		})
	}
}
