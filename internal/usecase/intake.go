package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/balwinder10003-code/ATTRAAH/internal/catalog"
	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
	"github.com/balwinder10003-code/ATTRAAH/internal/observ"
	"github.com/balwinder10003-code/ATTRAAH/internal/upi"
)

// advanceIntake applies one text message to the customer's draft. Invalid
// input re-prompts the same step without advancing; nothing is persisted
// until the final step completes.
func (e *Engine) advanceIntake(ctx context.Context, customerID string, d *IntakeDraft, text string) error {
	text = strings.TrimSpace(text)

	switch d.Step {
	case StepName:
		if text == "" {
			return e.notifier.SendText(ctx, customerID, msgAskName)
		}
		d.Name = text
		d.Step = StepMobile
		return e.notifier.SendText(ctx, customerID, msgAskMobile)

	case StepMobile:
		if text == "" {
			return e.notifier.SendText(ctx, customerID, msgAskMobile)
		}
		d.Mobile = text
		d.Step = StepProduct
		return e.notifier.SendTextWithChoices(ctx, customerID, msgAskProduct, catalog.Products())

	case StepProduct:
		if !catalog.HasProduct(text) {
			return e.notifier.SendText(ctx, customerID, msgBadProduct)
		}
		d.Product = text
		d.Step = StepSize
		sizes, _ := catalog.Sizes(text)
		return e.notifier.SendTextWithChoices(ctx, customerID, msgAskSize, sizes)

	case StepSize:
		if _, ok := catalog.Price(d.Product, text); !ok {
			return e.notifier.SendText(ctx, customerID, msgBadSize)
		}
		d.Size = text
		d.Step = StepPcs
		return e.notifier.SendText(ctx, customerID, msgAskPcs)

	case StepPcs:
		pcs, err := strconv.Atoi(text)
		if err != nil || pcs <= 0 {
			return e.notifier.SendText(ctx, customerID, msgBadPcs)
		}
		d.Pcs = pcs
		d.Step = StepAddress
		return e.notifier.SendText(ctx, customerID, msgAskAddress)

	case StepAddress:
		if text == "" {
			return e.notifier.SendText(ctx, customerID, msgAskAddress)
		}
		d.Address = text
		return e.completeIntake(ctx, customerID, d)
	}
	return nil
}

// completeIntake turns the finished draft into a persisted order and shows
// the payment request. The order row is written before the QR is sent, so
// a proof uploaded immediately afterwards always has a matching record.
func (e *Engine) completeIntake(ctx context.Context, customerID string, d *IntakeDraft) error {
	amount, err := catalog.Amount(d.Product, d.Size, d.Pcs)
	if err != nil {
		// The draft can only reach here with catalog-validated fields;
		// treat a mismatch as a restart.
		e.sessions.ClearIntake(customerID)
		return e.notifier.SendText(ctx, customerID, msgBadProduct)
	}

	orderID, err := e.allocateOrderID(ctx)
	if err != nil {
		return e.surface(ctx, customerID, err, "allocate order id")
	}

	order := &entity.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Name:       d.Name,
		Mobile:     d.Mobile,
		Address:    d.Address,
		Product:    d.Product,
		Size:       d.Size,
		Pcs:        d.Pcs,
		Amount:     amount,
		Status:     entity.StatusPaymentPending,
		CreatedAt:  e.now(),
	}
	if err := order.Validate(); err != nil {
		e.sessions.ClearIntake(customerID)
		return err
	}

	if err := e.store.Append(ctx, order); err != nil {
		// Draft stays at the address step; re-sending the address retries.
		return e.surface(ctx, customerID, err, "persist order")
	}

	e.sessions.ClearIntake(customerID)
	e.sessions.SetAwaitingProof(customerID, orderID)
	observ.OrdersCreated.Inc()
	e.publish(ctx, EventOrderCreated, order)

	uri := upi.PaymentURI(e.cfg.Payee, amount, orderID)
	caption := msgPaymentCaption(orderID, amount, e.cfg.Payee.VPA)

	png, err := upi.QRPNG(uri)
	if err != nil {
		e.log.Warn("qr render failed, sending plain link", "order_id", orderID, "error", err)
		return e.notifier.SendText(ctx, customerID, caption+"\n\n"+uri)
	}
	return e.notifier.SendImage(ctx, customerID, Image{PNG: png}, caption)
}
