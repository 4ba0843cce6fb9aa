package newsdeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// userStore persists account documents as JSON values. Email uniqueness is
// enforced through a separate index key claimed with SETNX at creation time;
// the documents themselves carry no constraint.
type userStore struct {
	redis  *redis.Client
	prefix string
}

func newUserStore(redisClient *redis.Client, prefix string) *userStore {
	return &userStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *userStore) key(id string) string {
	return s.prefix + ":user:" + id
}

func (s *userStore) emailKey(email string) string {
	return s.prefix + ":user:email:" + strings.ToLower(email)
}

func (s *userStore) indexKey() string {
	return s.prefix + ":users"
}

// Create persists a new account. The email index key is claimed first; losing
// that claim means another account already holds the address.
func (s *userStore) Create(ctx context.Context, record UserRecord) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	claimed, err := s.redis.SetNX(ctx, s.emailKey(record.Email), record.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !claimed {
		return ErrDuplicateEmail
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(record.ID), encoded, 0)
		pipe.SAdd(ctx, s.indexKey(), record.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// GetByEmail resolves the email index and loads the document. A dangling
// index entry reports the same ErrUnknownEmail as a missing one.
func (s *userStore) GetByEmail(ctx context.Context, email string) (UserRecord, error) {
	id, err := s.redis.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return UserRecord{}, ErrUnknownEmail
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	record, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return UserRecord{}, ErrUnknownEmail
	}
	return record, err
}

func (s *userStore) GetByID(ctx context.Context, id string) (UserRecord, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return UserRecord{}, ErrUserNotFound
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record UserRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return UserRecord{}, err
	}
	return record, nil
}

// Replace swaps the whole document under WATCH so a concurrent update cannot
// be silently lost. When the email changes, the old index entry is released
// and the new one claimed in the same transaction.
func (s *userStore) Replace(ctx context.Context, record UserRecord) error {
	const maxRetries = 4
	key := s.key(record.ID)
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrUserNotFound
			}
			if err != nil {
				return err
			}

			var old UserRecord
			if err := json.Unmarshal(data, &old); err != nil {
				return err
			}

			emailChanged := !strings.EqualFold(old.Email, record.Email)
			if emailChanged {
				owner, err := tx.Get(ctx, s.emailKey(record.Email)).Result()
				if err != nil && !errors.Is(err, redis.Nil) {
					return err
				}
				if err == nil && owner != record.ID {
					return ErrDuplicateEmail
				}
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				if emailChanged {
					pipe.Del(ctx, s.emailKey(old.Email))
					pipe.Set(ctx, s.emailKey(record.Email), record.ID, 0)
				}
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrDuplicateEmail):
				return err
			default:
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: replace contention", ErrStoreUnavailable)
}

// All loads every account document. Dangling ids in the index set are skipped.
func (s *userStore) All(ctx context.Context) ([]UserRecord, error) {
	ids, err := s.redis.SMembers(ctx, s.indexKey()).Result()
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

	records := make([]UserRecord, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var record UserRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// SetCollectionRefs rewrites the account's owned-collection reference list.
func (s *userStore) SetCollectionRefs(ctx context.Context, userID string, mutate func([]string) []string) error {
	const maxRetries = 4
	key := s.key(userID)

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrUserNotFound
			}
			if err != nil {
				return err
			}

			var record UserRecord
			if err := json.Unmarshal(data, &record); err != nil {
				return err
			}
			record.Collections = mutate(record.Collections)

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
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	return fmt.Errorf("%w: reference update contention", ErrStoreUnavailable)
}

// Seed destructively replaces every account document inside one MULTI/EXEC
// transaction, so a crash can never leave the store half-seeded.
func (s *userStore) Seed(ctx context.Context, records []UserRecord) error {
	existing, err := s.All(ctx)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, old := range existing {
			pipe.Del(ctx, s.key(old.ID))
			pipe.Del(ctx, s.emailKey(old.Email))
		}
		pipe.Del(ctx, s.indexKey())

		for _, record := range records {
			encoded, err := json.Marshal(record)
			if err != nil {
				return err
			}
			pipe.Set(ctx, s.key(record.ID), encoded, 0)
			pipe.Set(ctx, s.emailKey(record.Email), record.ID, 0)
			pipe.SAdd(ctx, s.indexKey(), record.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
