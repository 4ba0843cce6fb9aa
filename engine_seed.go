package newsdeck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Development fixtures. Seeding is a convenience for local environments and
// is only reachable when the HTTP layer mounts the seed routes explicitly.
const (
	seedUserEmail  = "dwaynemail@gmail.com"
	seedAdminEmail = "admin@gmail.com"
	seedPassword   = "password1"
)

// SeedAccounts destructively replaces all accounts with two fixtures, one
// user and one admin, both with the password "password1". Roles must be
// seeded first.
func (e *Engine) SeedAccounts(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	userRole, err := e.roles.GetByName(ctx, RoleUser)
	if err != nil {
		return err
	}
	adminRole, err := e.roles.GetByName(ctx, RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := e.hasher.Hash(seedPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	records := []UserRecord{
		{
			ID:          uuid.NewString(),
			FirstName:   "Dwayne",
			LastName:    "Johnson",
			Email:       seedUserEmail,
			Hash:        hash,
			RoleID:      userRole.ID,
			CreatedAt:   now,
			Collections: []string{},
		},
		{
			ID:          uuid.NewString(),
			FirstName:   "The",
			LastName:    "Admin",
			Email:       seedAdminEmail,
			Hash:        hash,
			RoleID:      adminRole.ID,
			CreatedAt:   now,
			Collections: []string{},
		},
	}

	if err := e.users.Seed(ctx, records); err != nil {
		return err
	}

	e.auditEmit(ctx, AuditEvent{EventType: AuditSeed, Success: true, Metadata: map[string]string{"store": "accounts"}})
	return nil
}

// SeedCollections destructively replaces all collections with fixtures owned
// by the two seed accounts. Accounts must be seeded first.
func (e *Engine) SeedCollections(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	user, err := e.users.GetByEmail(ctx, seedUserEmail)
	if err != nil {
		return err
	}
	admin, err := e.users.GetByEmail(ctx, seedAdminEmail)
	if err != nil {
		return err
	}

	fixtures := []struct {
		query string
		owner string
	}{
		{"Market", user.ID},
		{"Tech Startups", user.ID},
		{"Animal Nutrition", user.ID},
		{"US elections", user.ID},
		{"Maritime shipping", admin.ID},
		{"Switzerland", admin.ID},
	}

	now := time.Now().UTC()
	records := make([]CollectionRecord, 0, len(fixtures))
	refs := map[string][]string{user.ID: {}, admin.ID: {}}
	for _, fixture := range fixtures {
		record := CollectionRecord{
			ID:             uuid.NewString(),
			Query:          fixture.query,
			From:           now.Add(-e.config.Collection.DefaultWindow),
			MinClusterSize: e.config.Collection.DefaultMinClusterSize,
			SortBy:         e.config.Collection.DefaultSortKey,
			OwnerID:        fixture.owner,
			CreatedAt:      now,
		}
		records = append(records, record)
		refs[fixture.owner] = append(refs[fixture.owner], record.ID)
	}

	if err := e.collections.Seed(ctx, records); err != nil {
		return err
	}
	for ownerID, ids := range refs {
		ids := ids
		if err := e.users.SetCollectionRefs(ctx, ownerID, func([]string) []string {
			return ids
		}); err != nil {
			return err
		}
	}

	e.auditEmit(ctx, AuditEvent{EventType: AuditSeed, Success: true, Metadata: map[string]string{"store": "collections"}})
	return nil
}
