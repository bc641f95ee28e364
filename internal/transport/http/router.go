// Package http is the gin transport: routing, middleware and handlers.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/pkg/metrics"
)

// Handlers groups the route handlers. Nil handlers leave their routes unregistered.
type Handlers struct {
	Catalog      *CatalogHandler
	Products     *ProductHandler
	Orders       *OrderHandler
	Testimonials *TestimonialHandler
	Users        *UserHandler
	Cron         *CronHandler
	Events       *EventsHandler
}

// NewRouter builds the gin engine with middleware and every registered route.
// m may be nil, in which case /metrics is not served.
func NewRouter(h Handlers, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), Recovery(logger))
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Catalog != nil {
		router.GET("/catalog", h.Catalog.List)
		router.GET("/api/inventory", h.Catalog.List)
	}

	api := router.Group("/api")

	if h.Products != nil {
		products := api.Group("/products")
		products.GET("", h.Products.List)
		products.POST("", h.Products.Create)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	if h.Orders != nil {
		api.GET("/orders", h.Orders.List)
		admin := api.Group("/admin/orders")
		admin.POST("", h.Orders.Create)
		admin.GET("/:id", h.Orders.Get)
		admin.PUT("/:id", h.Orders.UpdateStatus)
		admin.DELETE("/:id", h.Orders.Delete)
	}

	if h.Testimonials != nil {
		testimonials := api.Group("/testimonials")
		testimonials.GET("", h.Testimonials.List)
		testimonials.POST("", h.Testimonials.Create)
		testimonials.GET("/:id", h.Testimonials.Get)
		testimonials.PUT("/:id", h.Testimonials.Update)
		testimonials.DELETE("/:id", h.Testimonials.Delete)
	}

	if h.Users != nil {
		users := api.Group("/users")
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	if h.Cron != nil {
		api.GET("/cron", h.Cron.Status)
		api.POST("/cron", h.Cron.Start)
		api.DELETE("/cron", h.Cron.Stop)
		api.POST("/cron/jobs/:name", h.Cron.Trigger)
	}

	if h.Events != nil {
		api.GET("/v1/events", h.Events.List)
	}

	return router
}
