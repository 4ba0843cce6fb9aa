package newsdeck

import (
	"context"
	"testing"
)

func TestSeedRolesAndNames(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	names, err := engine.RoleNames(context.Background())
	if err != nil {
		t.Fatalf("RoleNames failed: %v", err)
	}
	if len(names) != 2 || names[0] != RoleAdmin || names[1] != RoleUser {
		t.Fatalf("expected sorted roles [admin user], got %v", names)
	}
}

func TestSeedRolesReplacesRegistry(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	if err := engine.SeedRoles(ctx); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}

	names, err := engine.RoleNames(ctx)
	if err != nil {
		t.Fatalf("RoleNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected re-seed to replace, not append; got %v", names)
	}
}

func TestSeedAccounts(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	if err := engine.SeedAccounts(ctx); err != nil {
		t.Fatalf("SeedAccounts failed: %v", err)
	}

	views, err := engine.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", len(views))
	}

	// Both fixtures log in with the fixture password.
	if _, err := engine.Login(ctx, seedUserEmail, seedPassword); err != nil {
		t.Fatalf("seed user login failed: %v", err)
	}
	pair, err := engine.Login(ctx, seedAdminEmail, seedPassword)
	if err != nil {
		t.Fatalf("seed admin login failed: %v", err)
	}

	isAdmin, err := engine.IsAdmin(ctx, pair.UserID)
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if !isAdmin {
		t.Fatal("expected seeded admin account to resolve as admin")
	}
}

func TestSeedAccountsReplacesExisting(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")

	if err := engine.SeedAccounts(ctx); err != nil {
		t.Fatalf("SeedAccounts failed: %v", err)
	}

	views, err := engine.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected seeding to replace existing accounts, got %d", len(views))
	}
	for _, view := range views {
		if view.Email == "a@x.com" {
			t.Fatal("expected pre-seed account to be gone")
		}
	}
}

func TestSeedCollections(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	if err := engine.SeedAccounts(ctx); err != nil {
		t.Fatalf("SeedAccounts failed: %v", err)
	}
	if err := engine.SeedCollections(ctx); err != nil {
		t.Fatalf("SeedCollections failed: %v", err)
	}

	all, err := engine.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 seeded collections, got %d", len(all))
	}

	user, err := engine.users.GetByEmail(ctx, seedUserEmail)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	admin, err := engine.users.GetByEmail(ctx, seedAdminEmail)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}

	userColls, err := engine.CollectionsByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("CollectionsByOwner failed: %v", err)
	}
	adminColls, err := engine.CollectionsByOwner(ctx, admin.ID)
	if err != nil {
		t.Fatalf("CollectionsByOwner failed: %v", err)
	}
	if len(userColls) != 4 || len(adminColls) != 2 {
		t.Fatalf("expected 4 user and 2 admin collections, got %d and %d", len(userColls), len(adminColls))
	}

	// The owner documents carry matching reference lists.
	if len(user.Collections) != 4 || len(admin.Collections) != 2 {
		t.Fatalf("expected owner refs 4 and 2, got %d and %d", len(user.Collections), len(admin.Collections))
	}
}

func TestSeedCollectionsIsIdempotent(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	if err := engine.SeedAccounts(ctx); err != nil {
		t.Fatalf("SeedAccounts failed: %v", err)
	}
	if err := engine.SeedCollections(ctx); err != nil {
		t.Fatalf("SeedCollections failed: %v", err)
	}
	if err := engine.SeedCollections(ctx); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}

	all, err := engine.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected re-seed to replace fixtures, got %d", len(all))
	}
}
