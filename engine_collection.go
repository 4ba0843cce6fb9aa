package newsdeck

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// AddCollection creates a smart collection owned by ownerID. The owner id
// comes from the authenticated route path, never the request body. The
// search window, cluster threshold, and sort key take their configured
// creation defaults.
func (e *Engine) AddCollection(ctx context.Context, ownerID, query string) (CollectionRecord, error) {
	if e == nil {
		return CollectionRecord{}, ErrEngineNotReady
	}
	if err := e.validateQuery(query); err != nil {
		return CollectionRecord{}, err
	}

	// Every collection's owner reference must resolve to an existing account.
	if _, err := e.users.GetByID(ctx, ownerID); err != nil {
		return CollectionRecord{}, err
	}

	now := time.Now().UTC()
	record := CollectionRecord{
		ID:             uuid.NewString(),
		Query:          query,
		From:           now.Add(-e.config.Collection.DefaultWindow),
		MinClusterSize: e.config.Collection.DefaultMinClusterSize,
		SortBy:         e.config.Collection.DefaultSortKey,
		OwnerID:        ownerID,
		CreatedAt:      now,
	}

	if err := e.collections.Create(ctx, record); err != nil {
		return CollectionRecord{}, err
	}
	if err := e.users.SetCollectionRefs(ctx, ownerID, func(refs []string) []string {
		return append(refs, record.ID)
	}); err != nil {
		return CollectionRecord{}, err
	}

	e.metricInc(MetricCollectionAdded)
	e.auditEmit(ctx, AuditEvent{EventType: AuditCollectionAdd, UserID: ownerID, Success: true, Metadata: map[string]string{"collection": record.ID}})
	return record, nil
}

// PatchCollection replaces the query of an owned collection. A caller that is
// not the owner fails with [ErrNotOwner].
func (e *Engine) PatchCollection(ctx context.Context, callerID, id, query string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if err := e.validateQuery(query); err != nil {
		return err
	}

	record, err := e.collections.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.OwnerID != callerID {
		e.metricInc(MetricOwnerMismatch)
		return ErrNotOwner
	}

	if err := e.collections.UpdateQuery(ctx, id, query); err != nil {
		return err
	}

	e.metricInc(MetricCollectionPatched)
	e.auditEmit(ctx, AuditEvent{EventType: AuditCollectionPatch, UserID: callerID, Success: true, Metadata: map[string]string{"collection": id}})
	return nil
}

// DeleteCollection removes an owned collection and drops the owner's
// reference to it.
func (e *Engine) DeleteCollection(ctx context.Context, callerID, id string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	record, err := e.collections.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.OwnerID != callerID {
		e.metricInc(MetricOwnerMismatch)
		return ErrNotOwner
	}

	if err := e.collections.Delete(ctx, record); err != nil {
		return err
	}
	if err := e.users.SetCollectionRefs(ctx, record.OwnerID, func(refs []string) []string {
		kept := refs[:0]
		for _, ref := range refs {
			if ref != id {
				kept = append(kept, ref)
			}
		}
		return kept
	}); err != nil && err != ErrUserNotFound {
		return err
	}

	e.metricInc(MetricCollectionDeleted)
	e.auditEmit(ctx, AuditEvent{EventType: AuditCollectionDelete, UserID: callerID, Success: true, Metadata: map[string]string{"collection": id}})
	return nil
}

// CollectionsByOwner returns the owner's collections ordered by creation time.
// The per-owner index is authoritative, not the owner document's reference
// list.
func (e *Engine) CollectionsByOwner(ctx context.Context, ownerID string) ([]CollectionRecord, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	records, err := e.collections.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sortCollections(records)
	return records, nil
}

// ListCollections returns every collection, ordered by creation time.
func (e *Engine) ListCollections(ctx context.Context) ([]CollectionRecord, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	records, err := e.collections.All(ctx)
	if err != nil {
		return nil, err
	}
	sortCollections(records)
	return records, nil
}

func (e *Engine) validateQuery(query string) error {
	if len(query) < 1 || len(query) > e.config.Collection.MaxQueryLength {
		return ErrQueryInvalid
	}
	return nil
}

func sortCollections(records []CollectionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}
