// Package metrics defines and registers all custom Prometheus metrics for
// the Clean Hub marketplace API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cleanhub"

// AuthDenialsTotal counts requests rejected by the authentication or
// authorization gates.
// Label:
//   - reason: "missing_credentials", "invalid_credentials",
//     "unknown_identity", or "insufficient_role"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests rejected by the auth gates, by reason.",
	},
	[]string{"reason"},
)

// BookingsCreatedTotal counts newly created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// BookingTransitionsTotal counts booking lifecycle transitions applied
// through the API.
// Label:
//   - to: the status the booking moved to ("approved", "paid")
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions, by target status.",
	},
	[]string{"to"},
)

// PaymentIntentsTotal counts payment-intent requests sent to the provider.
// Label:
//   - outcome: "ok" or "error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment-intent creations, by outcome.",
	},
	[]string{"outcome"},
)
