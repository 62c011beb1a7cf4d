package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SubmissionsTotal.WithLabelValues("booking", OutcomeFallback).Inc()
	m.SubmissionsTotal.WithLabelValues("booking", OutcomeFallback).Inc()
	m.RateLimitedTotal.Inc()

	if got := testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("booking", OutcomeFallback)); got != 2 {
		t.Errorf("expected 2 fallback submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.RateLimitedTotal); got != 1 {
		t.Errorf("expected 1 rate limited request, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered metric families")
	}
}

func TestNewNop_Independent(t *testing.T) {
	a := NewNop()
	b := NewNop()
	a.RateLimitedTotal.Inc()
	if got := testutil.ToFloat64(b.RateLimitedTotal); got != 0 {
		t.Errorf("nop instances should not share state, got %v", got)
	}
}
