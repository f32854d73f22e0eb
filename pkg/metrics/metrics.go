// Package metrics exposes Prometheus counters for the routing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhooksReceived counts webhook notifications accepted for processing.
	WebhooksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routarr_webhooks_received_total",
		Help: "Number of webhook notifications accepted for processing.",
	})

	// Routed counts notifications forwarded, per downstream instance.
	Routed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routarr_routed_total",
		Help: "Number of notifications forwarded to a downstream instance.",
	}, []string{"instance"})

	// NoMatch counts notifications no filter matched.
	NoMatch = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routarr_no_match_total",
		Help: "Number of notifications no filter matched.",
	})

	// MetadataErrors counts metadata lookups that failed and were degraded
	// to an empty mapping.
	MetadataErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routarr_metadata_errors_total",
		Help: "Number of metadata lookups that failed.",
	})

	// DispatchErrors counts forwards that failed, per downstream instance.
	DispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routarr_dispatch_errors_total",
		Help: "Number of failed forwards to a downstream instance.",
	}, []string{"instance"})
)
