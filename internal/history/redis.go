package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/math-master/backend/internal/domain/mocktest"
)

// RedisStore keeps result history as a per-student Redis list. LPUSH gives
// the most-recent-first, append-only ordering the history view wants for
// free.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedis(address, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func key(username string) string {
	return "mathmaster:history:" + username
}

func (s *RedisStore) Save(ctx context.Context, username string, result mocktest.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return s.client.LPush(ctx, key(username), payload).Err()
}

func (s *RedisStore) List(ctx context.Context, username string) ([]mocktest.Result, error) {
	entries, err := s.client.LRange(ctx, key(username), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]mocktest.Result, 0, len(entries))
	for _, entry := range entries {
		var result mocktest.Result
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
