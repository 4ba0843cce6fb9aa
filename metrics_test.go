package newsdeck

import (
	"context"
	"sync"
	"testing"
)

func TestMetricsCountAccountFlow(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	if _, err := engine.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "password1"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if _, err := engine.Login(ctx, "a@x.com", "password1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.Login(ctx, "a@x.com", "wrong-password"); err == nil {
		t.Fatal("expected login failure")
	}

	snapshot := engine.MetricsSnapshot()
	expect := map[MetricID]uint64{
		MetricRegisterSuccess:   1,
		MetricRegisterDuplicate: 1,
		MetricLoginSuccess:      1,
		MetricLoginFailure:      1,
		MetricRefreshSuccess:    0,
	}
	for id, want := range expect {
		if got := snapshot.Counters[id]; got != want {
			t.Fatalf("counter %d: expected %d, got %d", id, want, got)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	engine, _, done := newTestEngine(t, cfg)
	defer done()

	mustRegister(t, engine, "a@x.com", "password1")

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricRegisterSuccess] != 0 {
		t.Fatal("expected disabled metrics to stay at zero")
	}
}

func TestMetricsConcurrentIncrement(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(MetricLoginSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricLoginSuccess); got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0 from nil metrics, got %d", got)
	}
	if snapshot := m.Snapshot(); snapshot.Counters == nil {
		t.Fatal("expected non-nil snapshot map from nil metrics")
	}
}

func TestMetricsOutOfRangeID(t *testing.T) {
	m := &Metrics{}
	m.Inc(metricCount + 10)

	if got := m.Value(metricCount + 10); got != 0 {
		t.Fatalf("expected out-of-range id to read 0, got %d", got)
	}
}
