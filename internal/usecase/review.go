package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
	"github.com/balwinder10003-code/ATTRAAH/internal/observ"
)

// HandleImage treats any customer image as a proof-of-payment submission.
// The target order is the tracked awaiting-proof one, falling back to the
// customer's most recently created order. A resubmission after rejection is
// handled exactly like a first submission.
func (e *Engine) HandleImage(ctx context.Context, from, imageRef string) error {
	var order *entity.Order

	if orderID, ok := e.sessions.AwaitingProof(from); ok {
		o, err := e.store.FindByID(ctx, orderID)
		switch {
		case err == nil:
			order = o
		case errors.Is(err, entity.ErrNotFound):
			// Record vanished (store cleared); fall back to most recent.
			e.sessions.ClearAwaitingProof(from)
		default:
			return e.surface(ctx, from, err, "find awaited order")
		}
	}

	if order == nil {
		orders, err := e.store.FindByCustomer(ctx, from)
		if err != nil {
			return e.surface(ctx, from, err, "find customer orders")
		}
		if len(orders) == 0 {
			return e.notifier.SendText(ctx, from, msgProofNoOrder)
		}
		order = &orders[0] // newest first
	}

	if order.Settled() {
		return e.notifier.SendText(ctx, from, msgAlreadyProcessed)
	}

	approveTok, err := e.tokens.Bind(ctx, ActionBinding{Kind: ActionApprove, OrderID: order.OrderID, CustomerID: order.CustomerID})
	if err != nil {
		return e.surface(ctx, from, err, "bind approve token")
	}
	rejectTok, err := e.tokens.Bind(ctx, ActionBinding{Kind: ActionReject, OrderID: order.OrderID, CustomerID: order.CustomerID})
	if err != nil {
		return e.surface(ctx, from, err, "bind reject token")
	}

	err = e.notifier.SendImageWithActions(ctx, e.cfg.ApproverID,
		Image{Ref: imageRef},
		msgProofForwardCaption(order),
		[]Action{
			{Label: "✅ Approve", Token: approveTok},
			{Label: "❌ Reject", Token: rejectTok},
		})
	if err != nil {
		return fmt.Errorf("forward proof to approver: %w", err)
	}

	observ.ProofsForwarded.Inc()
	e.publish(ctx, EventPaymentSubmitted, order)
	return e.notifier.SendText(ctx, from, msgProofReceived)
}

// HandleCallback applies a pressed action button. Tokens are minted only
// for the approver, so an unknown token is answered, never acted on.
func (e *Engine) HandleCallback(ctx context.Context, from, token string) error {
	b, err := e.tokens.Resolve(ctx, token)
	if errors.Is(err, ErrTokenNotFound) {
		return e.notifier.SendText(ctx, from, msgTokenExpired)
	}
	if err != nil {
		return e.surface(ctx, from, err, "resolve action token")
	}

	switch b.Kind {
	case ActionApprove:
		return e.approve(ctx, from, b)
	case ActionReject:
		return e.reject(ctx, from, b)
	case ActionDispatch:
		e.sessions.OpenDispatch(from, b.OrderID)
		return e.notifier.SendText(ctx, from, msgDispatchPrompt(b.OrderID))
	}
	return fmt.Errorf("unknown action kind %q", b.Kind)
}

// reviewTarget loads the order behind a decision, reporting the two
// conditions that stop a review: a vanished record and a dispatched order.
func (e *Engine) reviewTarget(ctx context.Context, approverID string, b *ActionBinding) (*entity.Order, error) {
	o, err := e.store.FindByID(ctx, b.OrderID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, e.notifier.SendText(ctx, approverID, msgAdminOrderMissing)
	}
	if err != nil {
		return nil, e.surface(ctx, approverID, err, "find order for review")
	}
	if o.Status == entity.StatusDispatched {
		return nil, e.notifier.SendText(ctx, approverID,
			fmt.Sprintf("ℹ️ Order %s is already dispatched. No changes were made.", o.OrderID))
	}
	return o, nil
}

func (e *Engine) approve(ctx context.Context, approverID string, b *ActionBinding) error {
	o, err := e.reviewTarget(ctx, approverID, b)
	if o == nil {
		return err
	}

	if err := e.store.UpdateStatus(ctx, o.OrderID, entity.StatusPaymentVerified, nil); err != nil {
		return e.surface(ctx, approverID, err, "mark verified")
	}
	o.Status = entity.StatusPaymentVerified
	e.sessions.ClearAwaitingProof(o.CustomerID)
	observ.Reviews.WithLabelValues("approve").Inc()
	e.publish(ctx, EventPaymentVerified, o)

	if err := e.notifier.SendText(ctx, o.CustomerID, msgVerifiedCustomer(o.OrderID)); err != nil {
		return fmt.Errorf("notify customer of verification: %w", err)
	}

	dispatchTok, err := e.tokens.Bind(ctx, ActionBinding{Kind: ActionDispatch, OrderID: o.OrderID, CustomerID: o.CustomerID})
	if err != nil {
		return e.surface(ctx, approverID, err, "bind dispatch token")
	}
	return e.notifier.SendTextWithActions(ctx, approverID,
		fmt.Sprintf("✅ Payment for %s marked verified.", o.OrderID),
		[]Action{{Label: "📬 Enter Dispatch Details", Token: dispatchTok}})
}

func (e *Engine) reject(ctx context.Context, approverID string, b *ActionBinding) error {
	o, err := e.reviewTarget(ctx, approverID, b)
	if o == nil {
		return err
	}

	if err := e.store.UpdateStatus(ctx, o.OrderID, entity.StatusPaymentRejected, nil); err != nil {
		return e.surface(ctx, approverID, err, "mark rejected")
	}
	o.Status = entity.StatusPaymentRejected
	// The awaiting-proof marker stays: the resubmitted screenshot must
	// target this same order.
	observ.Reviews.WithLabelValues("reject").Inc()
	e.publish(ctx, EventPaymentRejected, o)

	if err := e.notifier.SendText(ctx, o.CustomerID, msgRejectedCustomer(o.OrderID)); err != nil {
		return fmt.Errorf("notify customer of rejection: %w", err)
	}
	return e.notifier.SendText(ctx, approverID,
		fmt.Sprintf("❌ Payment for %s marked rejected. The customer was asked to resubmit.", o.OrderID))
}
