package entity

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPaymentPending  Status = "Payment Pending"
	StatusPaymentRejected Status = "Payment Rejected"
	StatusPaymentVerified Status = "Payment Verified"
	StatusDispatched      Status = "Dispatched"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidOrder = errors.New("invalid order")
)

// Tracking holds the courier details entered at dispatch time.
type Tracking struct {
	Courier     string
	TrackingID  string
	TrackingURL string
}

type Order struct {
	OrderID     string
	CustomerID  string
	Name        string
	Mobile      string
	Address     string
	Product     string
	Size        string
	Pcs         int
	Amount      int
	Status      Status
	Courier     string
	TrackingID  string
	TrackingURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Order) Validate() error {
	if o.OrderID == "" || o.CustomerID == "" {
		return ErrInvalidOrder
	}
	if o.Product == "" || o.Size == "" || o.Pcs <= 0 || o.Amount <= 0 {
		return ErrInvalidOrder
	}
	return nil
}

// Settled reports whether a payment proof for this order has already been
// accepted. Further proof uploads get an informational notice instead of
// re-entering review.
func (o *Order) Settled() bool {
	return o.Status == StatusPaymentVerified || o.Status == StatusDispatched
}

// Reviewable reports whether an approve/reject decision may still be applied.
// A rejected order stays reviewable: a resubmitted proof re-enters review.
func (o *Order) Reviewable() bool {
	return o.Status == StatusPaymentPending || o.Status == StatusPaymentRejected
}

// statusPriority ranks non-dispatched statuses for the active-order query.
// Lower wins; unranked statuses sort last.
var statusPriority = map[Status]int{
	StatusPaymentPending:  1,
	StatusPaymentRejected: 2,
	StatusPaymentVerified: 3,
}

func Priority(s Status) int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return 99
}
