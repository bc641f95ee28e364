package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalog "github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	order "github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	testimonial "github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	user "github.com/light-bringer/fulfillment-service/internal/app/user/domain"
	"github.com/light-bringer/fulfillment-service/internal/scheduler"
)

// mapError converts domain errors to an HTTP status and a client-facing message.
// Anything unrecognized is internal and answered with a generic 500.
func mapError(err error) (int, string) {
	var fieldErr *order.FieldError

	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, fieldErr.Error()

	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, catalog.ErrNotFound.Error()
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound, order.ErrNotFound.Error()
	case errors.Is(err, testimonial.ErrNotFound):
		return http.StatusNotFound, testimonial.ErrNotFound.Error()
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, user.ErrNotFound.Error()
	case errors.Is(err, scheduler.ErrUnknownJob):
		return http.StatusNotFound, scheduler.ErrUnknownJob.Error()

	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict, catalog.ErrConflict.Error()
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict, user.ErrEmailTaken.Error()
	case errors.Is(err, scheduler.ErrAlreadyRunning):
		return http.StatusConflict, scheduler.ErrAlreadyRunning.Error()
	case errors.Is(err, scheduler.ErrNotRunning):
		return http.StatusConflict, scheduler.ErrNotRunning.Error()

	case errors.Is(err, catalog.ErrInvalidParameter),
		errors.Is(err, catalog.ErrInvalidID),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, order.ErrInvalidID),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTotal),
		errors.Is(err, testimonial.ErrInvalidID),
		errors.Is(err, testimonial.ErrEmptyName),
		errors.Is(err, testimonial.ErrEmptyRole),
		errors.Is(err, testimonial.ErrEmptyText),
		errors.Is(err, testimonial.ErrInvalidRating),
		errors.Is(err, user.ErrInvalidID),
		errors.Is(err, user.ErrMissingField),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeError answers with the mapped status. Causes of 500s are logged, never returned.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get(RequestIDKey)
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Any("request_id", requestID))
	}
	c.JSON(status, gin.H{"error": msg})
}

// writeBindError answers a malformed request body.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
