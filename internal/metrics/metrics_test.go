package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := NewFlows(reg)

	f.Observe("analyzeCompatibility", "success", 2*time.Second)
	f.Observe("analyzeCompatibility", "error", time.Second)
	f.Observe("analyzeCompatibility", "success", time.Second)
	f.SetSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.invocations.WithLabelValues("analyzeCompatibility", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.invocations.WithLabelValues("analyzeCompatibility", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.sessions))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNilFlowsIsSafe(t *testing.T) {
	var f *Flows
	assert.NotPanics(t, func() {
		f.Observe("buildResume", "success", time.Second)
		f.SetSessions(1)
	})
}
