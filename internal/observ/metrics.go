// Package observ holds the process-wide Prometheus instruments. Registration
// happens at import time via promauto; the HTTP router exposes /metrics.
package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_events_total",
			Help: "Inbound chat events by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders persisted with status Payment Pending",
		},
	)

	ProofsForwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_proofs_forwarded_total",
			Help: "Payment screenshots forwarded to the approver",
		},
	)

	Reviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reviews_total",
			Help: "Approver decisions applied",
		},
		[]string{"decision"},
	)

	Dispatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_dispatched_total",
			Help: "Orders transitioned to Dispatched",
		},
	)
)
