package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/fulfillment-service/internal/pkg/metrics"
)

// CatalogResponse is the public catalog page.
type CatalogResponse struct {
	Products         []domain.Item          `json:"products"`
	AdditionalImages []domain.ShowcaseImage `json:"additionalImages"`
	TotalPages       int64                  `json:"totalPages"`
	CurrentPage      int64                  `json:"currentPage"`
	Total            int64                  `json:"total"`
}

// CatalogHandler serves the public catalog query.
type CatalogHandler struct {
	query   *list_catalog.Query
	metrics *metrics.Metrics
}

// NewCatalogHandler creates a catalog handler. m may be nil.
func NewCatalogHandler(query *list_catalog.Query, m *metrics.Metrics) *CatalogHandler {
	return &CatalogHandler{query: query, metrics: m}
}

// List handles GET /catalog and GET /api/inventory.
func (h *CatalogHandler) List(c *gin.Context) {
	req := &list_catalog.Request{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
	}

	page, err := h.query.Execute(c.Request.Context(), req)
	if err != nil {
		var paramErr *domain.ParamError
		if errors.As(err, &paramErr) {
			h.observe(metrics.OutcomeInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameter", "details": paramErr.Detail()})
			return
		}
		// The query has already logged the cause.
		h.observe(metrics.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch inventory",
			"details": domain.ErrQueryFailed.Error(),
		})
		return
	}

	h.observe(metrics.OutcomeOK)
	c.JSON(http.StatusOK, CatalogResponse{
		Products:         page.Items,
		AdditionalImages: page.Showcase,
		TotalPages:       page.TotalPages,
		CurrentPage:      page.CurrentPage,
		Total:            page.Total,
	})
}

func (h *CatalogHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveCatalogQuery(outcome)
	}
}
