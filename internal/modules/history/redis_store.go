// README: History store backed by a Redis list (LPUSH gives most-recent-first for free).
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const historyKey = "history:rides"

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{redis: redis}
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal ride record: %w", err)
	}
	return s.redis.LPush(ctx, historyKey, data).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	items, err := s.redis.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal ride record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.redis.Del(ctx, historyKey).Err()
}
