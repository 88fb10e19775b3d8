package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
	"github.com/balwinder10003-code/ATTRAAH/internal/observ"
)

// parseDispatchEntry extracts courier / tracking id / tracking URL from the
// approver's reply. Blank lines are skipped and anything past the third
// field is ignored. A reply with fewer than three fields is not an entry.
func parseDispatchEntry(text string) (entity.Tracking, bool) {
	fields := make([]string, 0, 3)
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			fields = append(fields, ln)
		}
	}
	if len(fields) < 3 {
		return entity.Tracking{}, false
	}
	return entity.Tracking{Courier: fields[0], TrackingID: fields[1], TrackingURL: fields[2]}, true
}

// handleDispatchEntry runs while a dispatch draft is open for the
// approver. A malformed reply is silently ignored: the draft keeps
// waiting for a well-formed one.
func (e *Engine) handleDispatchEntry(ctx context.Context, approverID, orderID, text string) error {
	tr, ok := parseDispatchEntry(text)
	if !ok {
		return nil
	}

	o, err := e.store.FindByID(ctx, orderID)
	if errors.Is(err, entity.ErrNotFound) {
		e.sessions.ClearDispatch(approverID)
		return e.notifier.SendText(ctx, approverID, msgAdminOrderMissing)
	}
	if err != nil {
		return e.surface(ctx, approverID, err, "find order for dispatch")
	}

	if err := e.store.UpdateStatus(ctx, o.OrderID, entity.StatusDispatched, &tr); err != nil {
		return e.surface(ctx, approverID, err, "mark dispatched")
	}

	o.Status = entity.StatusDispatched
	o.Courier = tr.Courier
	o.TrackingID = tr.TrackingID
	o.TrackingURL = tr.TrackingURL

	e.sessions.ClearDispatch(approverID)
	e.sessions.ClearAwaitingProof(o.CustomerID)
	observ.Dispatches.Inc()
	e.publish(ctx, EventOrderDispatched, o)

	if err := e.notifier.SendText(ctx, o.CustomerID, msgDispatchedCustomer(o)); err != nil {
		return fmt.Errorf("notify customer of dispatch: %w", err)
	}
	return e.notifier.SendText(ctx, approverID,
		fmt.Sprintf("🚚 Order %s marked dispatched via %s.", o.OrderID, tr.Courier))
}
