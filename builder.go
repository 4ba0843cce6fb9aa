package newsdeck

import (
	"errors"

	"github.com/MrEthical07/newsdeck/jwt"
	"github.com/MrEthical07/newsdeck/password"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine] from a configuration, a Redis client, and an
// optional audit sink. A builder is single-use.
type Builder struct {
	config    Config
	redis     *redis.Client
	auditSink AuditSink

	built bool
}

// New returns a builder primed with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the document-store client. Required.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the sink receiving engine audit events. Enabling
// Config.Audit without a sink falls back to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the engine. No I/O happens
// here; the first Redis round-trip is on the first Engine call.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	tokens, err := jwt.NewManager(jwt.Config{
		AccessTTL:     b.config.JWT.AccessTTL,
		RefreshTTL:    b.config.JWT.RefreshTTL,
		AccessSecret:  b.config.JWT.AccessSecret,
		RefreshSecret: b.config.JWT.RefreshSecret,
		Issuer:        b.config.JWT.Issuer,
		Leeway:        b.config.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewBcrypt(password.Config{Cost: b.config.Password.Cost})
	if err != nil {
		return nil, err
	}

	prefix := b.config.Store.KeyPrefix
	engine := &Engine{
		config:      b.config,
		users:       newUserStore(b.redis, prefix),
		roles:       newRoleStore(b.redis, prefix),
		collections: newCollectionStore(b.redis, prefix),
		throttle:    newAccountThrottle(b.redis, prefix, b.config.Account),
		audit:       newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:     newMetrics(b.config.Metrics),
		hasher:      hasher,
		tokens:      tokens,
	}

	b.built = true
	return engine, nil
}
