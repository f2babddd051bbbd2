// Package metrics holds the Prometheus collectors of the service. Collectors
// are registered on an explicit registerer so tests can use a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fooddelivery"

type Metrics struct {
	// NotificationsTotal counts per-recipient dispatch outcomes, labelled by
	// audience role and outcome (succeeded, failed, skipped).
	NotificationsTotal *prometheus.CounterVec

	DispatchDuration prometheus.Histogram

	// OrderEventsTotal counts lifecycle requests by event and result
	// (ok, not_found, forbidden, invalid_transition, already_claimed, wrong_state, error).
	OrderEventsTotal *prometheus.CounterVec

	HTTPRequestsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by audience and outcome",
		}, []string{"audience", "outcome"}),
		DispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time to resolve and send one batch of notification tasks",
			Buckets:   prometheus.DefBuckets,
		}),
		OrderEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Order lifecycle requests by event and result",
		}, []string{"event", "result"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
	}
}
