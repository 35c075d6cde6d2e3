package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkflow_entries_total",
			Help: "Vehicle entries by class and outcome",
		},
		[]string{"class", "status"},
	)

	exits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkflow_exits_total",
			Help: "Vehicle exits by class and charge outcome",
		},
		[]string{"class", "charge"},
	)

	gatewayAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkflow_gateway_requests_total",
			Help: "Outbound payment gateway requests",
		},
		[]string{"operation", "status"},
	)

	gatewayLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parkflow_gateway_request_duration_seconds",
			Help:    "Latency of outbound payment gateway requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"operation"},
	)

	settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkflow_settlements_total",
			Help: "Payment confirmations applied to sessions by source",
		},
		[]string{"source", "status"},
	)

	occupiedSlots = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parkflow_occupied_slots",
			Help: "Occupied slots per zone at the last summary",
		},
		[]string{"zone"},
	)
)

func RecordEntry(class, status string) {
	entries.WithLabelValues(class, status).Inc()
}

func RecordExit(class, charge string) {
	exits.WithLabelValues(class, charge).Inc()
}

func RecordGatewayRequest(operation, status string, seconds float64) {
	gatewayAttempts.WithLabelValues(operation, status).Inc()
	gatewayLatency.WithLabelValues(operation).Observe(seconds)
}

func RecordSettlement(source, status string) {
	settlements.WithLabelValues(source, status).Inc()
}

func SetOccupied(zone string, n int) {
	occupiedSlots.WithLabelValues(zone).Set(float64(n))
}
