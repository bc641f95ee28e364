package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/user/queries/get_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/queries/list_users"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/create_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/delete_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/update_user"
)

type userBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userPatchBody struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// UserHandler serves user CRUD. Password hashes never leave the domain.
type UserHandler struct {
	create *create_user.Interactor
	update *update_user.Interactor
	delete *delete_user.Interactor
	get    *get_user.Query
	list   *list_users.Query
	logger *zap.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(
	create *create_user.Interactor,
	update *update_user.Interactor,
	del *delete_user.Interactor,
	get *get_user.Query,
	list *list_users.Query,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		create: create,
		update: update,
		delete: del,
		get:    get,
		list:   list,
		logger: logger,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var body userBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	u, err := h.create.Execute(c.Request.Context(), &create_user.Request{
		Name:     body.Name,
		Email:    body.Email,
		Role:     body.Role,
		Password: body.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	u, err := h.get.Execute(c.Request.Context(), &get_user.Request{ID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Update handles PUT /api/users/:id. Omitted fields are left unchanged.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body userPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), &update_user.Request{
		ID: id,
		Patch: domain.Patch{
			Name:     body.Name,
			Email:    body.Email,
			Role:     body.Role,
			Password: body.Password,
		},
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), &delete_user.Request{ID: id}); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
