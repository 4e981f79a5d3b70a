package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutAttempts counts checkout requests by terminal outcome code.
	CheckoutAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "greenbasket",
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	// OrdersCreated counts vendor orders created, by payment method.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "greenbasket",
		Subsystem: "checkout",
		Name:      "orders_created_total",
		Help:      "Vendor orders created, by payment method.",
	}, []string{"payment_method"})

	// CheckoutDuration observes end-to-end checkout latency.
	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "greenbasket",
		Subsystem: "checkout",
		Name:      "duration_seconds",
		Help:      "End-to-end checkout latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// GatewayErrors counts upstream payment gateway failures.
	GatewayErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "greenbasket",
		Subsystem: "checkout",
		Name:      "gateway_errors_total",
		Help:      "Payment gateway order creation failures.",
	})
)
