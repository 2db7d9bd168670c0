// Package metrics provides Prometheus metrics registry and recording utilities.
//
// HTTP and dispatch metrics live next to the code that records them. This
// package holds the process wide collectors: build info, database query
// durations and the connection pool statistics.
//
// Example usage:
//
//	metrics.SetBuildInfo(version)
//	if err := metrics.RegisterDBStats(prometheus.DefaultRegisterer, db, "notify"); err != nil {
//	    return err
//	}
package metrics
