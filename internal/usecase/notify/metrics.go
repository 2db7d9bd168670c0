package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for notification dispatch monitoring
var (
	// notificationDispatchedTotal tracks dispatches that reached a channel
	notificationDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatched_total",
			Help: "Total number of notifications dispatched",
		},
		[]string{"channel"},
	)

	// notificationSentTotal tracks send results per channel and error kind
	notificationSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"channel", "status"}, // status: success|failure
	)

	notificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_duration_seconds",
			Help:    "Notification send duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"channel"},
	)

	// notificationRejectedTotal tracks dispatches that failed before delivery
	notificationRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_rejected_total",
			Help: "Total number of dispatches rejected before delivery",
		},
		[]string{"kind"},
	)

	notificationArchiveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_archive_failures_total",
			Help: "Total number of archive records that could not be written",
		},
	)

	attachmentsArchivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_attachments_archived_total",
			Help: "Total number of attachments written to the attachment archive",
		},
	)
)

// RecordDispatch records a dispatch that reached a channel.
func RecordDispatch(channel string) {
	notificationDispatchedTotal.WithLabelValues(channel).Inc()
}

// RecordSuccess records a successful send and its duration.
func RecordSuccess(channel string, duration time.Duration) {
	notificationSentTotal.WithLabelValues(channel, "success").Inc()
	notificationDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordFailure records a failed send and its duration.
func RecordFailure(channel string, duration time.Duration) {
	notificationSentTotal.WithLabelValues(channel, "failure").Inc()
	notificationDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordRejected records a dispatch stopped by validation or resolution.
func RecordRejected(kind string) {
	notificationRejectedTotal.WithLabelValues(kind).Inc()
}

// RecordArchiveFailure records an archive record that could not be written.
func RecordArchiveFailure() {
	notificationArchiveFailuresTotal.Inc()
}

// RecordAttachmentsArchived records n attachment files written.
func RecordAttachmentsArchived(n int) {
	attachmentsArchivedTotal.Add(float64(n))
}
