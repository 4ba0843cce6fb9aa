package newsdeck

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	record := mustRegister(t, engine, "a@x.com", "password1")
	if record.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if record.Hash == "" || record.Hash == "password1" {
		t.Fatal("expected stored password to be hashed")
	}
	if len(record.Collections) != 0 {
		t.Fatalf("expected empty collection refs, got %v", record.Collections)
	}

	result, err := engine.Authenticate(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if result.UserID != record.ID {
		t.Fatalf("expected user id %s, got %s", record.ID, result.UserID)
	}
	if result.RoleID != record.RoleID {
		t.Fatalf("expected role id %s, got %s", record.RoleID, result.RoleID)
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	mustRegister(t, engine, "a@x.com", "password1")

	_, err := engine.Register(context.Background(), RegisterRequest{
		Email:    "a@x.com",
		Password: "password2",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	views, err := engine.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one stored account after duplicate attempt, got %d", len(views))
	}
}

func TestRegisterValidation(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	cases := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"empty email", RegisterRequest{Email: "", Password: "password1"}, ErrEmailInvalid},
		{"malformed email", RegisterRequest{Email: "not-an-email", Password: "password1"}, ErrEmailInvalid},
		{"short password", RegisterRequest{Email: "b@x.com", Password: "short"}, ErrPasswordPolicy},
		{"long password", RegisterRequest{Email: "b@x.com", Password: string(make([]byte, 51))}, ErrPasswordPolicy},
		{"unknown role", RegisterRequest{Email: "b@x.com", Password: "password1", Role: "owner"}, ErrRoleInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Register(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthenticateFailures(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	mustRegister(t, engine, "a@x.com", "password1")

	if _, err := engine.Authenticate(context.Background(), "missing@x.com", "password1"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if _, err := engine.Authenticate(context.Background(), "a@x.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestListAccountsResolvesRolesAndStripsHash(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	mustRegister(t, engine, "a@x.com", "password1")
	if _, err := engine.Register(ctx, RegisterRequest{
		Email:    "admin@x.com",
		Password: "password1",
		Role:     RoleAdmin,
	}); err != nil {
		t.Fatalf("Register admin failed: %v", err)
	}

	views, err := engine.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(views))
	}

	byEmail := map[string]UserView{}
	for _, view := range views {
		byEmail[view.Email] = view
	}
	if byEmail["a@x.com"].Role != RoleUser {
		t.Fatalf("expected resolved role user, got %s", byEmail["a@x.com"].Role)
	}
	if byEmail["admin@x.com"].Role != RoleAdmin {
		t.Fatalf("expected resolved role admin, got %s", byEmail["admin@x.com"].Role)
	}
}

func TestUpdateAccount(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	record := mustRegister(t, engine, "a@x.com", "password1")

	err := engine.UpdateAccount(ctx, record.ID, UpdateAccountRequest{
		FirstName: "Updated",
		LastName:  "Name",
		Email:     "new@x.com",
		Password:  "password2",
		Role:      RoleAdmin,
	})
	if err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}

	// Old credentials are gone, new ones work, and the email index followed.
	if _, err := engine.Authenticate(ctx, "a@x.com", "password1"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected old email to be unindexed, got %v", err)
	}
	result, err := engine.Authenticate(ctx, "new@x.com", "password2")
	if err != nil {
		t.Fatalf("Authenticate with updated credentials failed: %v", err)
	}
	if result.UserID != record.ID {
		t.Fatalf("expected same user id after update, got %s", result.UserID)
	}

	isAdmin, err := engine.IsAdmin(ctx, record.ID)
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if !isAdmin {
		t.Fatal("expected updated account to resolve as admin")
	}
}

func TestUpdateAccountUnknownID(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	err := engine.UpdateAccount(context.Background(), "no-such-id", UpdateAccountRequest{
		Email:    "a@x.com",
		Password: "password1",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateAccountNilCollectionsKeepsRefs(t *testing.T) {
	engine, _, done := newTestEngine(t, testConfig())
	defer done()

	ctx := context.Background()
	record := mustRegister(t, engine, "a@x.com", "password1")

	coll, err := engine.AddCollection(ctx, record.ID, "Markets")
	if err != nil {
		t.Fatalf("AddCollection failed: %v", err)
	}

	if err := engine.UpdateAccount(ctx, record.ID, UpdateAccountRequest{
		Email:    "a@x.com",
		Password: "password1",
	}); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}

	stored, err := engine.users.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(stored.Collections) != 1 || stored.Collections[0] != coll.ID {
		t.Fatalf("expected collection refs to survive update, got %v", stored.Collections)
	}
}
