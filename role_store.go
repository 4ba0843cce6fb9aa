package newsdeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// roleStore persists the fixed role registry. Roles are written only by Seed
// and read everywhere else.
type roleStore struct {
	redis  *redis.Client
	prefix string
}

func newRoleStore(redisClient *redis.Client, prefix string) *roleStore {
	return &roleStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *roleStore) key(id string) string {
	return s.prefix + ":role:" + id
}

func (s *roleStore) nameKey(name Role) string {
	return s.prefix + ":role:name:" + string(name)
}

func (s *roleStore) indexKey() string {
	return s.prefix + ":roles"
}

func (s *roleStore) GetByID(ctx context.Context, id string) (RoleRecord, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return RoleRecord{}, ErrRoleNotFound
	}
	if err != nil {
		return RoleRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record RoleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return RoleRecord{}, err
	}
	return record, nil
}

func (s *roleStore) GetByName(ctx context.Context, name Role) (RoleRecord, error) {
	id, err := s.redis.Get(ctx, s.nameKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return RoleRecord{}, ErrRoleNotFound
	}
	if err != nil {
		return RoleRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s.GetByID(ctx, id)
}

// Names returns the role names of every registry entry.
func (s *roleStore) Names(ctx context.Context) ([]Role, error) {
	ids, err := s.redis.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	names := make([]Role, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetByID(ctx, id)
		if errors.Is(err, ErrRoleNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		names = append(names, record.Name)
	}
	return names, nil
}

// Seed destructively replaces the registry in one MULTI/EXEC transaction.
func (s *roleStore) Seed(ctx context.Context, records []RoleRecord) error {
	ids, err := s.redis.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	old := make([]RoleRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetByID(ctx, id)
		if errors.Is(err, ErrRoleNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		old = append(old, record)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, record := range old {
			pipe.Del(ctx, s.key(record.ID))
			pipe.Del(ctx, s.nameKey(record.Name))
		}
		pipe.Del(ctx, s.indexKey())

		for _, record := range records {
			encoded, err := json.Marshal(record)
			if err != nil {
				return err
			}
			pipe.Set(ctx, s.key(record.ID), encoded, 0)
			pipe.Set(ctx, s.nameKey(record.Name), record.ID, 0)
			pipe.SAdd(ctx, s.indexKey(), record.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
