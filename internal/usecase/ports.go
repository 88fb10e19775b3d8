package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
)

// Store is the durable order record. Implementations must keep exactly one
// row per order id and never reuse an id.
type Store interface {
	Append(ctx context.Context, o *entity.Order) error

	// UpdateStatus sets the status (and tracking fields when tr is non-nil)
	// and stamps the status-change time. An unknown order id is a silent
	// no-op; callers that care check FindByID first.
	UpdateStatus(ctx context.Context, orderID string, status entity.Status, tr *entity.Tracking) error

	// FindByCustomer returns the customer's orders newest-first by creation
	// timestamp (order id as tie-break). A store failure is returned as an
	// error, never flattened into an empty slice.
	FindByCustomer(ctx context.Context, customerID string) ([]entity.Order, error)

	// FindByID returns entity.ErrNotFound when no such order exists.
	FindByID(ctx context.Context, orderID string) (*entity.Order, error)
}

// Image is either a gateway file reference (forwarded as-is, e.g. a payment
// screenshot the customer uploaded) or inline PNG bytes rendered here (the
// payment QR). Exactly one field is set.
type Image struct {
	Ref string
	PNG []byte
}

// Action is a button offered alongside a message. Token is opaque to the
// transport; it round-trips unchanged in the callback event.
type Action struct {
	Label string
	Token string
}

// Notifier delivers messages to a participant. Implementations do not
// retry; a failure surfaces to the caller for that one event.
type Notifier interface {
	SendText(ctx context.Context, to string, text string) error
	// SendTextWithChoices renders a reply keyboard; the chosen label comes
	// back as a plain text event.
	SendTextWithChoices(ctx context.Context, to string, text string, choices []string) error
	SendTextWithActions(ctx context.Context, to string, text string, actions []Action) error
	SendImage(ctx context.Context, to string, img Image, caption string) error
	SendImageWithActions(ctx context.Context, to string, img Image, caption string, actions []Action) error
}

type ActionKind string

const (
	ActionApprove  ActionKind = "approve"
	ActionReject   ActionKind = "reject"
	ActionDispatch ActionKind = "dispatch"
)

// ActionBinding ties an opaque callback token to a decision target. Order
// ids never travel inside callback data, so the id format can change
// without breaking callback parsing.
type ActionBinding struct {
	Kind       ActionKind `json:"kind"`
	OrderID    string     `json:"order_id"`
	CustomerID string     `json:"customer_id"`
}

var ErrTokenNotFound = errors.New("action token not found or expired")

type ActionTokenStore interface {
	Bind(ctx context.Context, b ActionBinding) (token string, err error)
	// Resolve returns ErrTokenNotFound for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (*ActionBinding, error)
}

// OrderEvent is published on lifecycle transitions for downstream
// consumers (analytics, back office). Publishing is best effort.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	Amount     int       `json:"amount,omitempty"`
	At         time.Time `json:"at"`
}

const (
	EventOrderCreated     = "order.created"
	EventPaymentSubmitted = "payment.submitted"
	EventPaymentVerified  = "payment.verified"
	EventPaymentRejected  = "payment.rejected"
	EventOrderDispatched  = "order.dispatched"
)

type EventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

// EventDeduper guards against a gateway redelivering the same inbound
// event (webhook retry, AMQP requeue).
type EventDeduper interface {
	// FirstSeen returns true exactly once per event id within the dedupe window.
	FirstSeen(ctx context.Context, eventID string) (bool, error)
}
