// Package metrics defines the custom Prometheus metrics of the cafe POS API.
// HTTP request metrics come from echoprometheus; everything here is domain level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cafepos"

// OrdersCreatedTotal counts placed orders.
// Label:
//   - outlet_id: outlet the order was placed at
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed, by outlet.",
	},
	[]string{"outlet_id"},
)

// OrderTransitionsTotal counts successful order status changes by target status.
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions, by new status.",
	},
	[]string{"status"},
)

// OrderValue observes order totals.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Distribution of order totals.",
		Buckets:   []float64{50, 100, 200, 500, 1000, 2000, 5000},
	},
)

// ImportRowsTotal counts rows stored by bulk imports.
// Label:
//   - kind: "sales", "expenses", "online-sales" or "reconciliations"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of rows stored by spreadsheet imports.",
	},
	[]string{"kind"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuditDroppedTotal counts audit entries dropped because the queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped by the dispatcher.",
	},
)

// ObserveAuditQueue exposes the dispatcher backlog as a gauge. Call once.
func ObserveAuditQueue(pending func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_queue_depth",
			Help:      "Current number of audit entries waiting to be written.",
		},
		func() float64 { return float64(pending()) },
	)
}
