package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
	"github.com/balwinder10003-code/ATTRAAH/internal/observ"
	"github.com/balwinder10003-code/ATTRAAH/internal/orderid"
	"github.com/balwinder10003-code/ATTRAAH/internal/upi"
)

// Event kinds as delivered by the chat gateway.
const (
	EventKindText     = "text"
	EventKindImage    = "image"
	EventKindCallback = "callback"
)

// InboundEvent is one participant action: a text message, an uploaded
// image, or a pressed action button.
type InboundEvent struct {
	EventID  string
	Kind     string
	From     string
	Text     string
	ImageRef string
	Token    string
}

// Config carries the business identities the engine needs.
type Config struct {
	ApproverID  string
	Payee       upi.Payee
	SupportLink string
}

// Engine is the order lifecycle state machine. One inbound event is handled
// to completion before the next for the same participant; state is
// partitioned by participant identity, so no locking beyond the session
// store's own is needed.
type Engine struct {
	store    Store
	notifier Notifier
	tokens   ActionTokenStore
	events   EventPublisher // optional
	sessions *Sessions
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

func NewEngine(store Store, notifier Notifier, tokens ActionTokenStore, events EventPublisher, cfg Config, log *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		tokens:   tokens,
		events:   events,
		sessions: NewSessions(),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// HandleEvent dispatches a single inbound event. Exactly one handler runs
// per event, keyed by the event kind and the participant's current step.
func (e *Engine) HandleEvent(ctx context.Context, ev InboundEvent) error {
	var err error
	switch ev.Kind {
	case EventKindText:
		err = e.HandleText(ctx, ev.From, ev.Text)
	case EventKindImage:
		err = e.HandleImage(ctx, ev.From, ev.ImageRef)
	case EventKindCallback:
		err = e.HandleCallback(ctx, ev.From, ev.Token)
	default:
		err = fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	observ.EventsHandled.WithLabelValues(ev.Kind, outcome).Inc()
	return err
}

// HandleText routes a plain text message: an open dispatch draft for the
// approver wins, then menu actions, then the customer's intake step.
func (e *Engine) HandleText(ctx context.Context, from, text string) error {
	if from == e.cfg.ApproverID {
		if orderID, ok := e.sessions.DispatchTarget(from); ok {
			return e.handleDispatchEntry(ctx, from, orderID, text)
		}
	}

	switch text {
	case "/start":
		e.sessions.ClearIntake(from)
		return e.notifier.SendTextWithChoices(ctx, from, msgWelcome, menuChoices())
	case MenuPlaceOrder:
		e.sessions.StartIntake(from)
		return e.notifier.SendText(ctx, from, msgAskName)
	case MenuActiveOrder:
		return e.sendActiveOrder(ctx, from)
	case MenuOrderSummary:
		return e.sendOrderSummary(ctx, from)
	case MenuPaymentStatus:
		return e.sendPaymentStatus(ctx, from)
	case MenuDeliveryStatus:
		return e.sendDeliveryStatus(ctx, from)
	case MenuContactSupport:
		return e.notifier.SendText(ctx, from, msgContactSupport(e.cfg.SupportLink))
	}

	if draft, ok := e.sessions.Intake(from); ok {
		return e.advanceIntake(ctx, from, draft, text)
	}
	return e.notifier.SendTextWithChoices(ctx, from, msgWelcome, menuChoices())
}

func menuChoices() []string {
	return []string{
		MenuPlaceOrder, MenuActiveOrder,
		MenuOrderSummary, MenuDeliveryStatus,
		MenuPaymentStatus, MenuContactSupport,
	}
}

// orderIDExists adapts the store lookup for orderid.GenerateUnique.
func (e *Engine) orderIDExists(ctx context.Context, id string) (bool, error) {
	_, err := e.store.FindByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// allocateOrderID verifies non-collision against the store before
// accepting an id.
func (e *Engine) allocateOrderID(ctx context.Context) (string, error) {
	return orderid.GenerateUnique(ctx, e.now(), e.orderIDExists)
}

// publish emits a lifecycle event, best effort. A broker outage never
// blocks the customer path.
func (e *Engine) publish(ctx context.Context, typ string, o *entity.Order) {
	if e.events == nil {
		return
	}
	ev := OrderEvent{
		Type:       typ,
		OrderID:    o.OrderID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Amount:     o.Amount,
		At:         e.now(),
	}
	if err := e.events.Publish(ctx, ev); err != nil {
		e.log.Warn("event publish failed", "type", typ, "order_id", o.OrderID, "error", err)
	}
}

// surface logs a dependency failure, tells the participant something
// actionable, and hands the error back to the transport.
func (e *Engine) surface(ctx context.Context, to string, err error, op string) error {
	e.log.Error("dependency failure", "op", op, "participant", to, "error", err)
	if sendErr := e.notifier.SendText(ctx, to, msgStoreUnavailable); sendErr != nil {
		e.log.Error("failure notice undeliverable", "participant", to, "error", sendErr)
	}
	return fmt.Errorf("%s: %w", op, err)
}
