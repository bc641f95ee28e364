package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/events/queries/list_events"
)

// Event is one outbox event in the HTTP response.
type Event struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	ProcessedAt *string         `json:"processed_at,omitempty"`
}

// ListEventsResponse is the body of GET /api/v1/events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// EventsHandler serves the outbox event feed.
type EventsHandler struct {
	query  *list_events.Query
	logger *zap.Logger
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(query *list_events.Query, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{query: query, logger: logger}
}

// List handles GET /api/v1/events.
func (h *EventsHandler) List(c *gin.Context) {
	req := &list_events.Request{}
	if v := c.Query("event_type"); v != "" {
		req.EventType = &v
	}
	if v := c.Query("aggregate_id"); v != "" {
		req.AggregateID = &v
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	data, total, err := h.query.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	events := make([]Event, 0, len(data))
	for _, d := range data {
		event := Event{
			EventID:     d.EventID,
			EventType:   d.EventType,
			AggregateID: d.AggregateID,
			Payload:     json.RawMessage("null"),
			Status:      d.Status,
			CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		}
		if d.Payload.Valid {
			if raw, err := json.Marshal(d.Payload.Value); err == nil {
				event.Payload = raw
			}
		}
		if d.ProcessedAt.Valid {
			processedAt := d.ProcessedAt.Time.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	c.JSON(http.StatusOK, ListEventsResponse{Events: events, TotalCount: total})
}
