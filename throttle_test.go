package newsdeck

import (
	"context"
	"errors"
	"testing"
	"time"
)

func throttledConfig() Config {
	cfg := testConfig()
	cfg.Account.EnableEmailThrottle = true
	cfg.Account.EnableIPThrottle = true
	cfg.Account.ThrottleMaxAttempts = 2
	cfg.Account.ThrottleCooldown = time.Minute
	return cfg
}

func TestLoginEmailThrottle(t *testing.T) {
	engine, _, done := newTestEngine(t, throttledConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	// Two attempts pass the throttle, the third does not, regardless of
	// whether the credentials were right.
	for i := 0; i < 2; i++ {
		if _, err := engine.Login(ctx, "a@x.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, err := engine.Login(ctx, "a@x.com", "password1"); !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}

	// A different email is unaffected.
	mustRegister(t, engine, "b@x.com", "password1")
	if _, err := engine.Login(ctx, "b@x.com", "password1"); err != nil {
		t.Fatalf("expected other email to pass, got %v", err)
	}
}

func TestLoginThrottleExpires(t *testing.T) {
	engine, mr, done := newTestEngine(t, throttledConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	for i := 0; i < 2; i++ {
		if _, err := engine.Login(ctx, "a@x.com", "password1"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	if _, err := engine.Login(ctx, "a@x.com", "password1"); !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := engine.Login(ctx, "a@x.com", "password1"); err != nil {
		t.Fatalf("expected login to pass after cooldown, got %v", err)
	}
}

func TestRegisterIPThrottle(t *testing.T) {
	engine, _, done := newTestEngine(t, throttledConfig())
	defer done()

	ctx := WithClientIP(context.Background(), "203.0.113.9")

	for i := 0; i < 2; i++ {
		if _, err := engine.Register(ctx, RegisterRequest{
			Email:    "a@x.com",
			Password: "password1",
		}); i == 0 && err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	// Third registration from the same address hits the IP budget even with
	// a fresh email.
	if _, err := engine.Register(ctx, RegisterRequest{
		Email:    "c@x.com",
		Password: "password1",
	}); !errors.Is(err, ErrRegistrationRateLimited) {
		t.Fatalf("expected ErrRegistrationRateLimited, got %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricRegisterRateLimited] != 1 {
		t.Fatalf("expected 1 throttled registration, got %d", snapshot.Counters[MetricRegisterRateLimited])
	}
}
