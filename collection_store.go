package newsdeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// collectionStore persists smart-collection documents plus a per-owner index
// set. The per-owner set is authoritative for ListByOwner; the owner's
// document-side reference list is maintained by the engine as a convenience.
type collectionStore struct {
	redis  *redis.Client
	prefix string
}

func newCollectionStore(redisClient *redis.Client, prefix string) *collectionStore {
	return &collectionStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *collectionStore) key(id string) string {
	return s.prefix + ":coll:" + id
}

func (s *collectionStore) ownerKey(ownerID string) string {
	return s.prefix + ":coll:owner:" + ownerID
}

func (s *collectionStore) indexKey() string {
	return s.prefix + ":colls"
}

func (s *collectionStore) Create(ctx context.Context, record CollectionRecord) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(record.ID), encoded, 0)
		pipe.SAdd(ctx, s.indexKey(), record.ID)
		pipe.SAdd(ctx, s.ownerKey(record.OwnerID), record.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *collectionStore) Get(ctx context.Context, id string) (CollectionRecord, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return CollectionRecord{}, ErrCollectionNotFound
	}
	if err != nil {
		return CollectionRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record CollectionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return CollectionRecord{}, err
	}
	return record, nil
}

// UpdateQuery replaces only the query field under WATCH.
func (s *collectionStore) UpdateQuery(ctx context.Context, id, query string) error {
	const maxRetries = 4
	key := s.key(id)

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrCollectionNotFound
			}
			if err != nil {
				return err
			}

			var record CollectionRecord
			if err := json.Unmarshal(data, &record); err != nil {
				return err
			}
			record.Query = query

			encoded, err := json.Marshal(record)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrCollectionNotFound) {
			return err
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	return fmt.Errorf("%w: update contention", ErrStoreUnavailable)
}

func (s *collectionStore) Delete(ctx context.Context, record CollectionRecord) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(record.ID))
		pipe.SRem(ctx, s.indexKey(), record.ID)
		pipe.SRem(ctx, s.ownerKey(record.OwnerID), record.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *collectionStore) ByOwner(ctx context.Context, ownerID string) ([]CollectionRecord, error) {
	return s.loadSet(ctx, s.ownerKey(ownerID))
}

func (s *collectionStore) All(ctx context.Context) ([]CollectionRecord, error) {
	return s.loadSet(ctx, s.indexKey())
}

func (s *collectionStore) loadSet(ctx context.Context, setKey string) ([]CollectionRecord, error) {
	ids, err := s.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}

	values, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	records := make([]CollectionRecord, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var record CollectionRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Seed destructively replaces every collection document in one MULTI/EXEC
// transaction.
func (s *collectionStore) Seed(ctx context.Context, records []CollectionRecord) error {
	existing, err := s.All(ctx)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, old := range existing {
			pipe.Del(ctx, s.key(old.ID))
			pipe.Del(ctx, s.ownerKey(old.OwnerID))
		}
		pipe.Del(ctx, s.indexKey())

		for _, record := range records {
			encoded, err := json.Marshal(record)
			if err != nil {
				return err
			}
			pipe.Set(ctx, s.key(record.ID), encoded, 0)
			pipe.SAdd(ctx, s.indexKey(), record.ID)
			pipe.SAdd(ctx, s.ownerKey(record.OwnerID), record.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
