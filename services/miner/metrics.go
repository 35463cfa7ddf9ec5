package miner

import (
	"sync"

	"github.com/bsv-blockchain/teranode-consensus/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusMinerRoundsIssued    *prometheus.CounterVec
	prometheusMinerRoundsAbandoned *prometheus.CounterVec
	prometheusMinerBlockMined      prometheus.Histogram
	prometheusMinerSubmitRejected  *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusMinerRoundsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teranode",
			Subsystem: "miner",
			Name:      "rounds_issued",
			Help:      "Number of mining rounds issued, by algorithm",
		},
		[]string{"algo"},
	)

	prometheusMinerRoundsAbandoned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teranode",
			Subsystem: "miner",
			Name:      "rounds_abandoned",
			Help:      "Number of mining rounds abandoned, by algorithm",
		},
		[]string{"algo"},
	)

	prometheusMinerBlockMined = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "teranode",
			Subsystem: "miner",
			Name:      "block_mined",
			Help:      "Histogram of the time from issuing a round to its accepted solution",
			Buckets:   util.MetricsBucketsSeconds,
		},
	)

	prometheusMinerSubmitRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teranode",
			Subsystem: "miner",
			Name:      "submit_rejected",
			Help:      "Number of rejected solution submissions, by reason",
		},
		[]string{"reason"},
	)
}
