// Package util holds small helpers shared by the services.
package util

import "github.com/prometheus/client_golang/prometheus"

// Histogram buckets, each doubling from its start value.
var (
	// MetricsBucketsMicroSeconds spans 128µs to 262ms: single header checks.
	MetricsBucketsMicroSeconds = prometheus.ExponentialBuckets(128e-6, 2, 12)

	// MetricsBucketsMilliSeconds spans 1ms to 4s: difficulty window reads.
	MetricsBucketsMilliSeconds = prometheus.ExponentialBuckets(1e-3, 2, 13)

	// MetricsBucketsSeconds spans 1s to about 34 minutes: mining rounds.
	MetricsBucketsSeconds = prometheus.ExponentialBuckets(1, 2, 12)
)
