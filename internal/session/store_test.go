package session

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/fadilmartias/career-compass/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreGet(t *testing.T) {
	st := NewStore(context.Background(), newFakeAdvisor(), time.Hour, zap.NewNop(), nil)
	s := st.Create()

	got, err := st.Get(s.ID.String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(context.Background(), newFakeAdvisor(), time.Hour, zap.NewNop(), nil)

	s, created := st.GetOrCreate("")
	assert.True(t, created)

	again, created := st.GetOrCreate(s.ID.String())
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = st.GetOrCreate("unknown")
	assert.True(t, created)
	assert.Equal(t, 2, st.Len())
}

func TestStoreEvict(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewFlows(reg)
	st := NewStore(context.Background(), newFakeAdvisor(), time.Hour, zap.NewNop(), m)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	stale := st.Create()
	now = now.Add(45 * time.Minute)
	fresh := st.Create()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Sessions()))

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, st.Evict())

	_, err := st.Get(stale.ID.String())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(fresh.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions()))
}

func TestStoreEvictKeepsBusySessions(t *testing.T) {
	adv := newFakeAdvisor()
	gate := make(chan struct{})
	base := adv.analyze
	adv.analyze = func(req flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
		<-gate
		return base(req)
	}
	st := NewStore(context.Background(), adv, time.Minute, zap.NewNop(), nil)
	now := time.Now()
	st.now = func() time.Time { return now }

	s := st.Create()
	require.NoError(t, s.Analyze(FormPatch{
		CurrentUserDescription: str("QA engineer"),
		TargetJobDescription:   str("SDET"),
	}))
	now = now.Add(time.Hour)
	assert.Zero(t, st.Evict())

	close(gate)
	st.Wait()
	assert.Equal(t, 1, st.Evict())
}
