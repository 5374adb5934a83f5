// Package metrics defines the Prometheus collectors shared by the
// application services and the HTTP adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "randohub"

// Transition labels.
const (
	TransitionRegister   = "register"
	TransitionReactivate = "reactivate"
	TransitionCancel     = "cancel"
)

// ParticipationTransitionsTotal counts committed participant state changes.
// Label:
//   - transition: register, reactivate or cancel
var ParticipationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "participation_transitions_total",
		Help:      "Total number of participant state transitions committed to the store.",
	},
	[]string{"transition"},
)

// NotificationsTotal counts notification attempts.
// Labels:
//   - kind: template kind (e.g. "event_reminder")
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification attempts, by template kind and result.",
	},
	[]string{"kind", "result"},
)

// BulkNotifyDuration measures one NotifyAll run.
var BulkNotifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "bulk_notify_duration_seconds",
		Help:      "Duration of a bulk reminder run for one event.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ObserveNotification records the outcome of one send.
func ObserveNotification(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	NotificationsTotal.WithLabelValues(kind, result).Inc()
}
