package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation metrics.
var (
	flowLinksGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meshflow_flowlinks_generated_total",
		Help: "Flow links appended to meshes.",
	})
	edgesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meshflow_edges_skipped_total",
		Help: "Edges that produced no flow link, by reason.",
	}, []string{"reason"})
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meshflow_generations_total",
		Help: "Flow-link generation runs, by result.",
	}, []string{"result"})
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meshflow_generation_duration_seconds",
		Help:    "Duration of one flow-link generation run.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	})
)

// Storage metrics.
var (
	meshesStored = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "meshflow_meshes_stored",
		Help: "Meshes currently held by a repository, by backend.",
	}, []string{"backend"})
)

// Skip reasons, matching flowlink outcome names.
const (
	ReasonUnindexed   = "unindexed"
	ReasonDisjoint    = "disjoint"
	ReasonBoundary    = "boundary"
	ReasonNonManifold = "non_manifold"
)

// Generation helpers
func AddFlowLinks(n int)                   { flowLinksGenerated.Add(float64(n)) }
func AddSkippedEdges(reason string, n int) { edgesSkipped.WithLabelValues(reason).Add(float64(n)) }
func ObserveGeneration(d time.Duration)    { generationDuration.Observe(d.Seconds()) }
func IncGeneration(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	generationsTotal.WithLabelValues(result).Inc()
}

// Storage helpers
func SetMeshesStored(backend string, n int) { meshesStored.WithLabelValues(backend).Set(float64(n)) }
func IncMeshesStored(backend string)        { meshesStored.WithLabelValues(backend).Inc() }
func DecMeshesStored(backend string)        { meshesStored.WithLabelValues(backend).Dec() }
