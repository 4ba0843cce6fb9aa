package newsdeck

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// SeedRoles destructively replaces the role registry with the two fixed
// entries, admin and user, inside one store transaction. Development
// convenience only; never exposed on a production route.
func (e *Engine) SeedRoles(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	records := []RoleRecord{
		{ID: uuid.NewString(), Name: RoleAdmin},
		{ID: uuid.NewString(), Name: RoleUser},
	}
	if err := e.roles.Seed(ctx, records); err != nil {
		return err
	}

	e.auditEmit(ctx, AuditEvent{EventType: AuditSeed, Success: true, Metadata: map[string]string{"store": "roles"}})
	return nil
}

// RoleNames returns the registry's role names in sorted order.
func (e *Engine) RoleNames(ctx context.Context) ([]Role, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	names, err := e.roles.Names(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}

// IsAdmin re-fetches the account and resolves its role. This is the
// authoritative role lookup behind the admin gate; the token's role claim is
// never trusted for admin decisions.
func (e *Engine) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}

	record, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	roleRecord, err := e.roles.GetByID(ctx, record.RoleID)
	if err != nil {
		return false, err
	}
	return roleRecord.Name == RoleAdmin, nil
}
