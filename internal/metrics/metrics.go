package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_submitted_total",
		Help: "Orders accepted by the remote order service.",
	})
	OrdersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_failed_total",
		Help: "Order submissions rejected or lost to a service error.",
	})
	OrdersQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_queued_total",
		Help: "Orders stored in the local pending queue after a failed submission.",
	})
	OrdersFlushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_flushed_total",
		Help: "Pending orders successfully re-submitted by the sync loop.",
	})
	ReceiptsPrinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_printed_total",
		Help: "Receipt print invocations that succeeded.",
	})
	PrintFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_print_failures_total",
		Help: "Receipt or closing print invocations that failed.",
	})
	ClosingsPerformed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_closings_total",
		Help: "Register closings completed.",
	})
)
