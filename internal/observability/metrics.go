package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "azeyco_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "azeyco_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// UploadBytes counts stored upload bytes by picture kind.
	UploadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "azeyco_upload_bytes_total",
		Help: "Total bytes written to upload storage by kind",
	}, []string{"kind"})

	// UploadRejections counts rejected uploads by reason.
	UploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "azeyco_upload_rejections_total",
		Help: "Total uploads rejected by validation reason",
	}, []string{"reason"})
)

// ObserveQuery records the latency of a database query (use with defer).
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
