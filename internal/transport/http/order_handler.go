package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/order/queries/get_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/queries/list_orders"
	orderrepo "github.com/light-bringer/fulfillment-service/internal/app/order/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/create_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/delete_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/update_order_status"
)

// orderBody is the admin order payload. Total accepts a JSON number or string.
type orderBody struct {
	UserID       int64           `json:"userId"`
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
}

type orderStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// OrderHandler serves order listing and admin order management.
type OrderHandler struct {
	create       *create_order.Interactor
	updateStatus *update_order_status.Interactor
	delete       *delete_order.Interactor
	get          *get_order.Query
	list         *list_orders.Query
	logger       *zap.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(
	create *create_order.Interactor,
	updateStatus *update_order_status.Interactor,
	del *delete_order.Interactor,
	get *get_order.Query,
	list *list_orders.Query,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		create:       create,
		updateStatus: updateStatus,
		delete:       del,
		get:          get,
		list:         list,
		logger:       logger,
	}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Create handles POST /api/admin/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var body orderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	order, err := h.create.Execute(c.Request.Context(), &create_order.Request{
		UserID:       body.UserID,
		CustomerName: body.CustomerName,
		Email:        body.Email,
		Status:       body.Status,
		Total:        body.Total,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, orderrepo.ToDTO(order))
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	order, err := h.get.Execute(c.Request.Context(), &get_order.Request{OrderID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /api/admin/orders/:id. Only the status can change.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body orderStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	order, err := h.updateStatus.Execute(c.Request.Context(), &update_order_status.Request{
		OrderID: id,
		Status:  body.Status,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orderrepo.ToDTO(order))
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), &delete_order.Request{OrderID: id}); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
