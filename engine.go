package newsdeck

import (
	"context"

	"github.com/MrEthical07/newsdeck/jwt"
	"github.com/MrEthical07/newsdeck/password"
)

// Engine is the authentication and collection core. All methods are safe for
// concurrent use after [Builder.Build].
type Engine struct {
	config      Config
	users       *userStore
	roles       *roleStore
	collections *collectionStore
	throttle    *accountThrottle
	audit       *auditDispatcher
	metrics     *Metrics
	hasher      *password.Bcrypt
	tokens      *jwt.Manager
}

// Close drains and stops the audit dispatcher. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded under load.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	if event.IP == "" {
		event.IP = clientIPFromContext(ctx)
	}
	e.audit.Emit(ctx, event)
}
