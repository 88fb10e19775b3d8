package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

// EventSink is the engine-facing side of event ingestion.
type EventSink interface {
	HandleEvent(ctx context.Context, ev usecase.InboundEvent) error
}

// EventHandler accepts chat gateway webhooks. This is the push
// alternative to the AMQP inbound queue; both feed the same engine.
type EventHandler struct {
	engine EventSink
	dedupe usecase.EventDeduper
}

func NewEventHandler(engine EventSink, dedupe usecase.EventDeduper) *EventHandler {
	return &EventHandler{engine: engine, dedupe: dedupe}
}

type eventRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=text image callback"`
	From     string `json:"from" binding:"required"`
	Text     string `json:"text"`
	ImageRef string `json:"image_ref"`
	Token    string `json:"token"`
}

// POST /v1/events
func (h *EventHandler) Ingest(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_event", "error_description": err.Error()})
		return
	}

	first, err := h.dedupe.FirstSeen(c.Request.Context(), req.EventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if !first {
		c.JSON(http.StatusAccepted, gin.H{"accepted": true, "duplicate": true})
		return
	}

	if err := h.engine.HandleEvent(c.Request.Context(), usecase.InboundEvent{
		EventID:  req.EventID,
		Kind:     req.Kind,
		From:     req.From,
		Text:     req.Text,
		ImageRef: req.ImageRef,
		Token:    req.Token,
	}); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
