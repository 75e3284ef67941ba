package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Gateway orders created successfully.",
	})
	OrderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_failures_total",
		Help: "Order creation attempts that failed at the gateway.",
	})
	PaymentsVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_payments_verified_total",
		Help: "Payments whose gateway signature verified.",
	})
	SignatureRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_signature_rejections_total",
		Help: "Verification requests rejected for a bad signature.",
	})
	LedgerAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_ledger_append_failures_total",
		Help: "Ledger appends that failed after retries.",
	})
	LinkCacheFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_link_cache_fallbacks_total",
		Help: "Product link lookups that missed the snapshot and hit the store.",
	})
)
