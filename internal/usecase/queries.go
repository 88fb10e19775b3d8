package usecase

import (
	"context"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
)

// pickActive selects the one order to show as "active": lowest status
// priority wins, and within a priority the newest order (the input is
// newest-first). Dispatched orders are never active.
func pickActive(orders []entity.Order) *entity.Order {
	var best *entity.Order
	for i := range orders {
		o := &orders[i]
		if o.Status == entity.StatusDispatched {
			continue
		}
		if best == nil || entity.Priority(o.Status) < entity.Priority(best.Status) {
			best = o
		}
	}
	return best
}

func (e *Engine) sendActiveOrder(ctx context.Context, customerID string) error {
	orders, err := e.store.FindByCustomer(ctx, customerID)
	if err != nil {
		return e.surface(ctx, customerID, err, "query active order")
	}
	active := pickActive(orders)
	if active == nil {
		return e.notifier.SendText(ctx, customerID, msgNoActiveOrders)
	}
	return e.notifier.SendText(ctx, customerID, msgActiveOrder(active))
}

func (e *Engine) sendOrderSummary(ctx context.Context, customerID string) error {
	orders, err := e.store.FindByCustomer(ctx, customerID)
	if err != nil {
		return e.surface(ctx, customerID, err, "query order summary")
	}
	if len(orders) == 0 {
		return e.notifier.SendText(ctx, customerID, msgNoOrdersYet)
	}
	return e.notifier.SendText(ctx, customerID, msgOrderSummary(orders))
}

// sendPaymentStatus reports on the most recently created order only.
// "Most recent" means creation timestamp, not store row order.
func (e *Engine) sendPaymentStatus(ctx context.Context, customerID string) error {
	orders, err := e.store.FindByCustomer(ctx, customerID)
	if err != nil {
		return e.surface(ctx, customerID, err, "query payment status")
	}
	if len(orders) == 0 {
		return e.notifier.SendText(ctx, customerID, msgNoPaymentsYet)
	}
	return e.notifier.SendText(ctx, customerID, msgPaymentStatus(&orders[0]))
}

func (e *Engine) sendDeliveryStatus(ctx context.Context, customerID string) error {
	orders, err := e.store.FindByCustomer(ctx, customerID)
	if err != nil {
		return e.surface(ctx, customerID, err, "query delivery status")
	}
	var dispatched []entity.Order
	for _, o := range orders {
		if o.Status == entity.StatusDispatched {
			dispatched = append(dispatched, o)
		}
	}
	if len(dispatched) == 0 {
		return e.notifier.SendText(ctx, customerID, msgNoDispatchedYet)
	}
	return e.notifier.SendText(ctx, customerID, msgDeliveryStatus(dispatched))
}
