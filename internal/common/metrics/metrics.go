// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_applications_submitted_total",
			Help: "Total number of applications accepted and persisted",
		},
	)

	ApplicationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_applications_rejected_total",
			Help: "Total number of submissions rejected, by reason",
		},
		[]string{"reason"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_store_operation_duration_seconds",
			Help: "Duration of backing-store operations in seconds",
		},
		[]string{"operation"},
	)

	CorruptRecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_corrupt_records_dropped_total",
			Help: "Stored records dropped from listings because they could not be parsed",
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_sent_total",
			Help: "Notifications delivered, by channel",
		},
		[]string{"channel"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_failed_total",
			Help: "Notification deliveries that failed, by channel",
		},
		[]string{"channel"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method", "status"},
	)
)
