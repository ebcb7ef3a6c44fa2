// Package metrics defines and registers the custom Prometheus metrics of the
// vidly rental API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidly"

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceOperationsTotal counts CRUD operations on catalog resources.
// Labels:
//   - resource: "genre", "movie", "customer", "rental", "user"
//   - operation: "list", "get", "create", "replace", "delete"
//   - outcome: "ok", "rejected" (4xx) or "error" (5xx)
var ResourceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_operations_total",
		Help:      "Total number of resource operations, by resource, operation and outcome.",
	},
	[]string{"resource", "operation", "outcome"},
)

// RentalStockAdjustmentsTotal counts movie stock changes caused by rentals.
// Label:
//   - direction: "out" (rented) or "in" (released)
var RentalStockAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rental_stock_adjustments_total",
		Help:      "Total number of movie stock adjustments made by rentals.",
	},
	[]string{"direction"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the authorization chain.
// Label:
//   - reason: "missing_token", "invalid_token", "forbidden", "invalid_id"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization middleware chain.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts successful self-registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered through the public endpoint.",
	},
)
