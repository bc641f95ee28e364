package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/update_product"
)

// productBody is the admin product payload. Price accepts a JSON number or string.
type productBody struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock" binding:"min=0"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

func (b productBody) input() domain.ProductInput {
	return domain.ProductInput{
		Name:     b.Name,
		Price:    b.Price,
		Stock:    b.Stock,
		Category: b.Category,
		Image:    b.Image,
	}
}

// ProductHandler serves admin product CRUD.
type ProductHandler struct {
	create *create_product.Interactor
	update *update_product.Interactor
	delete *delete_product.Interactor
	get    *get_product.Query
	list   *list_products.Query
	logger *zap.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(
	create *create_product.Interactor,
	update *update_product.Interactor,
	del *delete_product.Interactor,
	get *get_product.Query,
	list *list_products.Query,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		create: create,
		update: update,
		delete: del,
		get:    get,
		list:   list,
		logger: logger,
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		page = 1
	}

	result, err := h.list.Execute(c.Request.Context(), &list_products.Request{Page: page})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	in := body.input()
	product, err := h.create.Execute(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, productDTO(product))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	product, err := h.get.Execute(c.Request.Context(), &get_product.Request{ProductID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	product, err := h.update.Execute(c.Request.Context(), &update_product.Request{
		ProductID:    id,
		ProductInput: body.input(),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, productDTO(product))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), &delete_product.Request{ProductID: id}); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func productDTO(p *domain.Product) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ID:        p.ID(),
		Name:      p.Name(),
		Price:     p.Price(),
		Stock:     p.Stock(),
		Category:  p.Category(),
		Image:     p.Image(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
