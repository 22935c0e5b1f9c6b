package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveRequest("ok", 0.5)
	m.ObserveRequest("ok", 0.1)
	m.ObserveRequest("error", 1.2)

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("ok")); got != 2 {
		t.Fatalf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("error count = %v, want 1", got)
	}
}

func TestChatMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveRequest("ok", 0.05)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 2 {
		t.Fatalf("expected 2 metric families, got %d", len(families))
	}
}

func TestChatMetricsNilSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveRequest("ok", 0.1)
}
