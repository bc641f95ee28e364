package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/scheduler"
)

// Scheduler is the lifecycle surface of the maintenance scheduler.
type Scheduler interface {
	Start() error
	Stop() error
	Status() scheduler.Status
	Trigger(ctx context.Context, name string) error
}

// CronHandler exposes scheduler status and lifecycle.
type CronHandler struct {
	scheduler Scheduler
	logger    *zap.Logger
}

// NewCronHandler creates a cron handler.
func NewCronHandler(s Scheduler, logger *zap.Logger) *CronHandler {
	return &CronHandler{scheduler: s, logger: logger}
}

// Status handles GET /api/cron.
func (h *CronHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}

// Start handles POST /api/cron. Starting a running scheduler is a 409.
func (h *CronHandler) Start(c *gin.Context) {
	if err := h.scheduler.Start(); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scheduler started", "status": h.scheduler.Status()})
}

// Stop handles DELETE /api/cron. Stopping an idle scheduler is a 409.
func (h *CronHandler) Stop(c *gin.Context) {
	if err := h.scheduler.Stop(); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scheduler stopped", "status": h.scheduler.Status()})
}

// Trigger handles POST /api/cron/jobs/:name and runs one job immediately.
func (h *CronHandler) Trigger(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.Trigger(c.Request.Context(), name); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job completed", "job": name})
}
