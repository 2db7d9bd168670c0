// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"database/sql"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BuildInfo exposes the running version as a constant 1 gauge.
var BuildInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "notify_build_info",
		Help: "Build information of the running binary",
	},
	[]string{"version", "go_version"},
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// SetBuildInfo records version on the build info gauge.
func SetBuildInfo(version string) {
	BuildInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordOperationDuration records the duration of a named database operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RegisterDBStats exports the sql.DBStats of db under the db_name label.
// Registering the same name twice is not an error.
func RegisterDBStats(reg prometheus.Registerer, db *sql.DB, name string) error {
	err := reg.Register(collectors.NewDBStatsCollector(db, name))
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}
