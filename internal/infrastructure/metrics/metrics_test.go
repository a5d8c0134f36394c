package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGenerationCounters(t *testing.T) {
	before := testutil.ToFloat64(flowLinksGenerated)
	AddFlowLinks(12)
	assert.Equal(t, before+12, testutil.ToFloat64(flowLinksGenerated))

	boundary := edgesSkipped.WithLabelValues(ReasonBoundary)
	before = testutil.ToFloat64(boundary)
	AddSkippedEdges(ReasonBoundary, 3)
	assert.Equal(t, before+3, testutil.ToFloat64(boundary))

	failed := generationsTotal.WithLabelValues("error")
	before = testutil.ToFloat64(failed)
	IncGeneration(false)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))

	ObserveGeneration(2 * time.Millisecond)
}

func TestMeshesStoredGauge(t *testing.T) {
	SetMeshesStored("test", 4)
	IncMeshesStored("test")
	DecMeshesStored("test")
	DecMeshesStored("test")
	assert.Equal(t, 3.0, testutil.ToFloat64(meshesStored.WithLabelValues("test")))
}
