package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo/memory"
	"github.com/light-bringer/fulfillment-service/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func str(s string) *string { return &s }
func num(n int64) *int64   { return &n }

// inventory has prices 1..12; items 3 and 8 are widgets.
func inventory() []domain.Row {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]domain.Row, 0, 12)
	for i := int64(1); i <= 12; i++ {
		title := fmt.Sprintf("Gadget %d", i)
		if i == 3 || i == 8 {
			title = fmt.Sprintf("Blue Widget %d", i)
		}
		rows = append(rows, domain.Row{
			ID:           i,
			Title:        str(title),
			VariantPrice: str(fmt.Sprintf("%d.00", i)),
			Quantity:     num(i),
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
	}
	return rows
}

func newCatalogRouter(rm *memory.ReadModel, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	h := NewCatalogHandler(list_catalog.NewQuery(rm, logger), m)
	return NewRouter(Handlers{Catalog: h}, logger, m)
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCatalog_DefaultPage(t *testing.T) {
	router := newCatalogRouter(memory.NewReadModel(inventory()...), zap.NewNop(), nil)

	rec := get(t, router, "/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	var body CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Products, 9)
	assert.Equal(t, int64(12), body.Total)
	assert.Equal(t, int64(2), body.TotalPages)
	assert.Equal(t, int64(1), body.CurrentPage)
	for i, p := range body.Products {
		assert.Equal(t, float64(i+1), p.Price, "ascending by price")
		assert.Equal(t, domain.PlaceholderImage, p.Image)
		assert.Equal(t, domain.FallbackCategory, p.Category)
		assert.Zero(t, p.Sales)
	}
	assert.Len(t, body.AdditionalImages, 0)
}

func TestCatalog_InventoryAliasAndSearch(t *testing.T) {
	router := newCatalogRouter(memory.NewReadModel(inventory()...), zap.NewNop(), nil)

	rec := get(t, router, "/api/inventory?search=widget")
	require.Equal(t, http.StatusOK, rec.Code)

	var body CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Total)
	require.Len(t, body.Products, 2)
	assert.Equal(t, "Blue Widget 3", body.Products[0].Name)
}

func TestCatalog_EmptyResultHasArrays(t *testing.T) {
	router := newCatalogRouter(memory.NewReadModel(), zap.NewNop(), nil)

	rec := get(t, router, "/catalog?category=all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[],"additionalImages":[],"totalPages":0,"currentPage":1,"total":0}`, rec.Body.String())
}

func TestCatalog_InvalidParameter(t *testing.T) {
	m := metrics.New()
	router := newCatalogRouter(memory.NewReadModel(inventory()...), zap.NewNop(), m)

	tests := []struct {
		query   string
		details string
	}{
		{"page=abc", "page: must be an integer"},
		{"page=1024819115206086202", "page: is out of range"},
		{"minPrice=cheap", "minPrice: must be a number"},
		{"minPrice=-1", "minPrice: must not be negative"},
		{"minPrice=50&maxPrice=10", "minPrice: must not exceed maxPrice"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, router, "/catalog?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":"Invalid parameter","details":%q}`, tt.details), rec.Body.String())
		})
	}
	assert.Equal(t, 5.0, testutil.ToFloat64(m.CatalogQueries.WithLabelValues(metrics.OutcomeInvalid)))
}

func TestCatalog_StorageFailureHidesCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)
	m := metrics.New()

	rm := memory.NewReadModel(inventory()...)
	rm.FailWith(errors.New("spanner: session pool exhausted"))
	router := newCatalogRouter(rm, logger, m)

	rec := get(t, router, "/catalog")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch inventory","details":"catalog query failed"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "session pool")

	assert.Equal(t, 1, logs.FilterMessage("catalog query failed").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogQueries.WithLabelValues(metrics.OutcomeFailed)))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newCatalogRouter(memory.NewReadModel(), zap.NewNop(), metrics.New())

	rec := get(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	get(t, router, "/catalog")
	rec = get(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fulfillment_catalog_queries_total{outcome="ok"} 1`)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
