package newsdeck

import (
	"context"
	"errors"
	"testing"
)

func TestLoginIssuesTokenPair(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	record := mustRegister(t, engine, "a@x.com", "password1")

	pair, err := engine.Login(ctx, "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.Access == pair.Refresh {
		t.Fatal("expected access and refresh tokens to differ")
	}
	if pair.UserID != record.ID {
		t.Fatalf("expected pair to carry user id %s, got %s", record.ID, pair.UserID)
	}

	claims, err := engine.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.UID != record.ID || claims.Email != "a@x.com" || claims.RoleID != record.RoleID {
		t.Fatalf("unexpected access claims: %+v", claims)
	}
}

func TestLoginFailureStatuses(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	if _, err := engine.Login(ctx, "missing@x.com", "password1"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if _, err := engine.Login(ctx, "a@x.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshPreservesSubject(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	record := mustRegister(t, engine, "a@x.com", "password1")

	pair, err := engine.Login(ctx, "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	access, err := engine.Refresh(ctx, pair.Refresh)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	claims, err := engine.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess of refreshed token failed: %v", err)
	}
	if claims.UID != record.ID {
		t.Fatalf("expected refreshed token to keep uid %s, got %s", record.ID, claims.UID)
	}
	if claims.Email != "a@x.com" || claims.RoleID != record.RoleID {
		t.Fatalf("expected refreshed token to keep email and role claims, got %+v", claims)
	}
}

func TestRefreshRejectsNonRefreshTokens(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	pair, err := engine.Login(ctx, "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// An access token must not pass the refresh check, nor garbage.
	if _, err := engine.Refresh(ctx, pair.Access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token, got %v", err)
	}
	if _, err := engine.Refresh(ctx, "not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestVerifyAccessRejectsRefreshToken(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	pair, err := engine.Login(ctx, "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := engine.VerifyAccess(pair.Refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
