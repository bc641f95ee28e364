package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/queries/get_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/queries/list_testimonials"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/create_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/delete_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/update_testimonial"
)

type testimonialBody struct {
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Testimonial string `json:"testimonial" binding:"required"`
	Rating      int64  `json:"rating"`
	VideoURL    string `json:"videoUrl" binding:"omitempty,url"`
}

type testimonialPatchBody struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Testimonial *string `json:"testimonial"`
	Rating      *int64  `json:"rating"`
	VideoURL    *string `json:"videoUrl"`
}

// TestimonialHandler serves testimonial CRUD.
type TestimonialHandler struct {
	create *create_testimonial.Interactor
	update *update_testimonial.Interactor
	delete *delete_testimonial.Interactor
	get    *get_testimonial.Query
	list   *list_testimonials.Query
	logger *zap.Logger
}

// NewTestimonialHandler creates a testimonial handler.
func NewTestimonialHandler(
	create *create_testimonial.Interactor,
	update *update_testimonial.Interactor,
	del *delete_testimonial.Interactor,
	get *get_testimonial.Query,
	list *list_testimonials.Query,
	logger *zap.Logger,
) *TestimonialHandler {
	return &TestimonialHandler{
		create: create,
		update: update,
		delete: del,
		get:    get,
		list:   list,
		logger: logger,
	}
}

// List handles GET /api/testimonials.
func (h *TestimonialHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /api/testimonials.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var body testimonialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	t, err := h.create.Execute(c.Request.Context(), &create_testimonial.Request{
		Name:        body.Name,
		Role:        body.Role,
		Testimonial: body.Testimonial,
		Rating:      body.Rating,
		VideoURL:    body.VideoURL,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Get handles GET /api/testimonials/:id.
func (h *TestimonialHandler) Get(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	t, err := h.get.Execute(c.Request.Context(), &get_testimonial.Request{ID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Update handles PUT /api/testimonials/:id. Omitted fields are left unchanged.
func (h *TestimonialHandler) Update(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body testimonialPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	t, err := h.update.Execute(c.Request.Context(), &update_testimonial.Request{
		ID: id,
		Patch: domain.Patch{
			Name:        body.Name,
			Role:        body.Role,
			Testimonial: body.Testimonial,
			Rating:      body.Rating,
			VideoURL:    body.VideoURL,
		},
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/testimonials/:id.
func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, err := pathID(c, domain.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), &delete_testimonial.Request{ID: id}); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
}
