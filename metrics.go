package newsdeck

import "sync/atomic"

// MetricID identifies one engine counter. IDs are dense and stable; exporters
// iterate them by definition tables, not by name.
type MetricID uint16

const (
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts registrations rejected for an existing email.
	MetricRegisterDuplicate
	// MetricRegisterRateLimited counts throttled registrations.
	MetricRegisterRateLimited
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts logins rejected for unknown email or bad password.
	MetricLoginFailure
	// MetricLoginRateLimited counts throttled logins.
	MetricLoginRateLimited
	// MetricRefreshSuccess counts access tokens re-issued from a refresh token.
	MetricRefreshSuccess
	// MetricRefreshFailure counts rejected refresh tokens.
	MetricRefreshFailure
	// MetricAccountUpdated counts admin account updates.
	MetricAccountUpdated
	// MetricCollectionAdded counts created collections.
	MetricCollectionAdded
	// MetricCollectionPatched counts collection query updates.
	MetricCollectionPatched
	// MetricCollectionDeleted counts deleted collections.
	MetricCollectionDeleted
	// MetricOwnerMismatch counts collection mutations rejected by the owner check.
	MetricOwnerMismatch

	metricCount
)

// Metrics is a fixed-size set of atomic counters. All methods are safe for
// concurrent use and are no-ops on a nil receiver.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

func newMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot copies every counter into a new map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricCount; id++ {
		snapshot.Counters[id] = m.counters[id].Load()
	}
	return snapshot
}
