package newsdeck

import (
	"errors"
	"time"
)

// Config defines the engine configuration. Instances are intended to be
// populated once at process start (see cmd/newsdeck-api) and then treated as
// immutable; the Engine never reads process environment itself.
type Config struct {
	JWT        JWTConfig
	Password   PasswordConfig
	Account    AccountConfig
	Collection CollectionConfig
	Store      StoreConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig carries the token service parameters. Access and refresh tokens
// are signed with distinct secrets so a refresh token can never pass an
// access-token check.
type JWTConfig struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig carries the bcrypt cost and the accepted password length
// bounds enforced at registration and update.
type PasswordConfig struct {
	Cost      int
	MinLength int
	MaxLength int
}

/*
====================================
ACCOUNT CONFIG
====================================
*/

// AccountConfig controls registration and login behavior.
type AccountConfig struct {
	DefaultRole         Role
	EnableIPThrottle    bool
	EnableEmailThrottle bool
	ThrottleMaxAttempts int
	ThrottleCooldown    time.Duration
}

/*
====================================
COLLECTION CONFIG
====================================
*/

// CollectionConfig carries the smart-collection creation defaults. The
// window is subtracted from the creation time to produce the "from" search
// bound handed to the news vendor API.
type CollectionConfig struct {
	DefaultWindow         time.Duration
	DefaultMinClusterSize int
	DefaultSortKey        string
	MaxQueryLength        int
}

/*
====================================
STORE / AUDIT / METRICS CONFIG
====================================
*/

// StoreConfig defines the Redis key namespace for all documents and indexes.
type StoreConfig struct {
	KeyPrefix string
}

// AuditConfig controls the buffered audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the in-process atomic counters.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: 20-minute access tokens,
// 30-day refresh tokens, bcrypt cost 12, 14-day collection windows. Secrets
// are intentionally left empty and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  20 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
			Issuer:     "newsdeck",
			Leeway:     30 * time.Second,
		},
		Password: PasswordConfig{
			Cost:      12,
			MinLength: 8,
			MaxLength: 50,
		},
		Account: AccountConfig{
			DefaultRole:         RoleUser,
			EnableIPThrottle:    false,
			EnableEmailThrottle: false,
			ThrottleMaxAttempts: 10,
			ThrottleCooldown:    15 * time.Minute,
		},
		Collection: CollectionConfig{
			DefaultWindow:         14 * 24 * time.Hour,
			DefaultMinClusterSize: 5,
			DefaultSortKey:        "createdAt",
			MaxQueryLength:        30,
		},
		Store: StoreConfig{
			KeyPrefix: "nd",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if cfg.JWT.RefreshTTL <= cfg.JWT.AccessTTL {
		return errors.New("refresh TTL must exceed access TTL")
	}
	if len(cfg.JWT.AccessSecret) == 0 || len(cfg.JWT.RefreshSecret) == 0 {
		return errors.New("access and refresh secrets are required")
	}
	if string(cfg.JWT.AccessSecret) == string(cfg.JWT.RefreshSecret) {
		return errors.New("access and refresh secrets must differ")
	}
	if cfg.Password.Cost < 4 || cfg.Password.Cost > 31 {
		return errors.New("invalid bcrypt cost")
	}
	if cfg.Password.MinLength <= 0 || cfg.Password.MaxLength < cfg.Password.MinLength {
		return errors.New("invalid password length bounds")
	}
	if cfg.Account.DefaultRole != RoleUser && cfg.Account.DefaultRole != RoleAdmin {
		return errors.New("default role must be a registry role")
	}
	if cfg.Collection.MaxQueryLength <= 0 {
		return errors.New("invalid collection query bound")
	}
	if cfg.Collection.DefaultWindow <= 0 {
		return errors.New("invalid collection window")
	}
	if cfg.Collection.DefaultMinClusterSize <= 0 {
		return errors.New("invalid minimum cluster size")
	}
	if cfg.Store.KeyPrefix == "" {
		return errors.New("store key prefix is required")
	}
	return nil
}
