// Package metrics is the single source of truth for the service's custom
// Prometheus collectors. Everything registers against the default registry
// via promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// OrdersCreatedTotal counts orders that committed successfully.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders successfully placed.",
	},
)

// OrdersRejectedTotal counts order placements that failed before commit.
// Label:
//   - reason: "out_of_stock", "product_not_found", "client_not_found",
//     "storage_error"
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of order placements rejected, by reason.",
	},
	[]string{"reason"},
)

// StockDecrementsTotal counts individual unit decrements applied by the
// order engine.
var StockDecrementsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_decrements_total",
		Help:      "Total number of single-unit stock decrements committed.",
	},
)

// NotificationsSentTotal counts messages handed to the notification gateway.
// Label:
//   - status: gateway receipt status ("sent") or "error"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of outbound notification attempts, by result.",
	},
	[]string{"status"},
)
