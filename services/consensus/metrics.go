package consensus

import (
	"sync"

	"github.com/bsv-blockchain/teranode-consensus/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusConsensusVerifyHeader   prometheus.Histogram
	prometheusConsensusRejected       *prometheus.CounterVec
	prometheusConsensusDifficulty     prometheus.Histogram
	prometheusConsensusDifficultyHits prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusConsensusVerifyHeader = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "teranode",
			Subsystem: "consensus",
			Name:      "verify_header",
			Help:      "Histogram of header verification",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusConsensusRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teranode",
			Subsystem: "consensus",
			Name:      "rejected",
			Help:      "Number of headers rejected, by reason",
		},
		[]string{"reason"},
	)

	prometheusConsensusDifficulty = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "teranode",
			Subsystem: "consensus",
			Name:      "calc_next_work_required",
			Help:      "Histogram of next target computation",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusConsensusDifficultyHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "teranode",
			Subsystem: "consensus",
			Name:      "difficulty_cache_hits",
			Help:      "Number of next target computations served from cache",
		},
	)
}
