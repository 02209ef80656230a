package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntityWrites counts create/update mutations by entity type.
	EntityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_entity_writes_total",
		Help: "Total number of entity create/update operations by entity and action",
	}, []string{"entity", "action"})

	// SoftDeletes counts soft-delete operations by entity type.
	SoftDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_soft_deletes_total",
		Help: "Total number of soft-delete operations by entity",
	}, []string{"entity"})

	// Restores counts restore operations by entity type.
	Restores = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_restores_total",
		Help: "Total number of restore operations by entity",
	}, []string{"entity"})

	// LikeToggles counts toggle outcomes.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
