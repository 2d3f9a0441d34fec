package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.TransfersCommitted == nil || m.LinkedGroups == nil || m.StorageErrors == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransfersCommitted.WithLabelValues("regular").Inc()
	m.LinkedGroups.WithLabelValues("committed").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TransfersCommitted.WithLabelValues("regular")); got != 1 {
		t.Fatalf("expected committed counter 1, got %v", got)
	}
}

func TestNewWithRegistererIsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names.
	_ = NewWithRegisterer(prometheus.NewRegistry())
	_ = NewWithRegisterer(prometheus.NewRegistry())
}
