package newsdeck

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// accountThrottle rate-limits registration and login attempts per email and
// per client IP using INCR with a cooldown-length expiry on first hit.
type accountThrottle struct {
	redis  *redis.Client
	prefix string
	config AccountConfig
}

func newAccountThrottle(redisClient *redis.Client, prefix string, cfg AccountConfig) *accountThrottle {
	return &accountThrottle{
		redis:  redisClient,
		prefix: prefix,
		config: cfg,
	}
}

// Enforce returns limited=true when either throttle key is over budget.
func (l *accountThrottle) Enforce(ctx context.Context, op, email, ip string) (bool, error) {
	if l.config.EnableEmailThrottle && email != "" {
		limited, err := l.enforceKey(ctx, l.emailKey(op, email))
		if limited || err != nil {
			return limited, err
		}
	}

	if l.config.EnableIPThrottle && ip != "" {
		limited, err := l.enforceKey(ctx, l.ipKey(op, ip))
		if limited || err != nil {
			return limited, err
		}
	}

	return false, nil
}

func (l *accountThrottle) enforceKey(ctx context.Context, key string) (bool, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.ThrottleCooldown).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return count > int64(l.config.ThrottleMaxAttempts), nil
}

func (l *accountThrottle) emailKey(op, email string) string {
	return l.prefix + ":rl:" + op + ":email:" + strings.ToLower(email)
}

func (l *accountThrottle) ipKey(op, ip string) string {
	return l.prefix + ":rl:" + op + ":ip:" + ip
}
