package chat

import (
	"context"
	"log/slog"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

const (
	// InboundQueue is where the chat gateway drops participant events.
	InboundQueue = "chat.inbound.q"
)

// inboundEvent is the wire shape the chat gateway publishes for every
// participant action.
type inboundEvent struct {
	EventID  string `json:"event_id"`
	Kind     string `json:"kind"` // text | image | callback
	From     string `json:"from"`
	Text     string `json:"text,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Token    string `json:"token,omitempty"`
}

// EventSink is the engine-facing side of event ingestion.
type EventSink interface {
	HandleEvent(ctx context.Context, ev usecase.InboundEvent) error
}

// InboundHandler feeds gateway events into the order engine. Redelivered
// events are dropped via the deduper, so an at-least-once broker never
// replays a completed intake step or double-forwards a proof.
type InboundHandler struct {
	engine EventSink
	dedupe usecase.EventDeduper
	log    *slog.Logger
}

func NewInboundHandler(engine EventSink, dedupe usecase.EventDeduper, log *slog.Logger) *InboundHandler {
	return &InboundHandler{engine: engine, dedupe: dedupe, log: log}
}

// JSONHandler wraps the typed handler for Router registration.
func (h *InboundHandler) JSONHandler() JSONHandler[inboundEvent] {
	return JSONHandler[inboundEvent]{HandleFunc: h.handle}
}

func (h *InboundHandler) handle(ctx context.Context, ev inboundEvent) error {
	if ev.EventID != "" && h.dedupe != nil {
		first, err := h.dedupe.FirstSeen(ctx, ev.EventID)
		if err != nil {
			return err
		}
		if !first {
			h.log.Debug("duplicate event dropped", "event_id", ev.EventID, "kind", ev.Kind)
			return nil
		}
	}

	return h.engine.HandleEvent(ctx, usecase.InboundEvent{
		EventID:  ev.EventID,
		Kind:     ev.Kind,
		From:     ev.From,
		Text:     ev.Text,
		ImageRef: ev.ImageRef,
		Token:    ev.Token,
	})
}
