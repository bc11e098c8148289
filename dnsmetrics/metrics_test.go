package dnsmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveQueryIncrementsCounters(t *testing.T) {
	m := NewUnregistered()
	m.ObserveQuery("udp", "ok", 5*time.Millisecond)

	require.Equal(t, float64(1), testutil.ToFloat64(m.Queries.WithLabelValues("udp", "ok")))
}

func TestObserveCacheLabelsHitAndMiss(t *testing.T) {
	m := NewUnregistered()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	require.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestNewRegistersAgainstRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	gathered, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, gathered)
}
