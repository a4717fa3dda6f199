package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("PET_CREATED")
	m.ObserveOperation("PET_CREATED")
	m.ObserveOperation("RX_DISPENSED")
	m.ObserveRequest("GET", "", 404)
	m.ObserveReport("day", 5*time.Millisecond)

	if got := testutil.ToFloat64(m.Operations.WithLabelValues("PET_CREATED")); got != 2 {
		t.Fatalf("expected 2 PET_CREATED, got %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("expected unmatched route counter, got %v", got)
	}
	if n := testutil.CollectAndCount(m.ReportDuration); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("X")
	m.ObserveReport("day", time.Second)
	m.ObserveRequest("GET", "/", 200)
}
