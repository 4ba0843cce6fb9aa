package newsdeck

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.AccessSecret = []byte("test-access-secret")
	cfg.JWT.RefreshSecret = []byte("test-refresh-secret")
	// Minimum cost keeps the hashing in tests fast.
	cfg.Password.Cost = 4
	return cfg
}

// newTestEngine builds an engine against miniredis with the role registry
// already seeded. The cleanup closes both the engine and the store.
func newTestEngine(t *testing.T, cfg Config) (*Engine, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	engine, err := New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	if err := engine.SeedRoles(context.Background()); err != nil {
		mr.Close()
		t.Fatalf("SeedRoles failed: %v", err)
	}

	return engine, mr, func() {
		engine.Close()
		mr.Close()
	}
}

func mustRegister(t *testing.T, engine *Engine, email, pass string) UserRecord {
	t.Helper()

	record, err := engine.Register(context.Background(), RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  pass,
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return record
}
