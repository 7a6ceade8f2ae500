package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "slots:"

// redisStore implements Store on a redis hash per conversation. Each slot is
// one hash field holding its raw JSON value, so single-slot updates do not
// rewrite the whole conversation.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) key(conversationID string) string {
	return redisKeyPrefix + conversationID
}

func (s *redisStore) Slots(ctx context.Context, conversationID string) (Slots, error) {
	key := s.key(conversationID)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	slots := make(Slots, len(fields))
	for name, raw := range fields {
		slots[name] = json.RawMessage(raw)
	}

	if s.ttl > 0 && len(fields) > 0 {
		// Refresh TTL on read so active conversations stay alive.
		_ = s.client.Expire(ctx, key, s.ttl).Err()
	}

	return slots, nil
}

func (s *redisStore) Set(ctx context.Context, conversationID string, updates Slots) error {
	key := s.key(conversationID)

	var toSet []any
	var toClear []string
	for name, raw := range updates {
		if len(raw) == 0 || string(raw) == "null" {
			toClear = append(toClear, name)
			continue
		}
		toSet = append(toSet, name, string(raw))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(toSet) > 0 {
			pipe.HSet(ctx, key, toSet...)
		}
		if len(toClear) > 0 {
			pipe.HDel(ctx, key, toClear...)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

func (s *redisStore) Delete(ctx context.Context, conversationID string, names ...string) error {
	key := s.key(conversationID)

	if len(names) == 0 {
		return s.client.Del(ctx, key).Err()
	}
	return s.client.HDel(ctx, key, names...).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
