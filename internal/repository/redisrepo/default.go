package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type jsonStore struct {
	rdb *redis.Client
}

func newJSONStore(rdb *redis.Client) Default {
	return &jsonStore{
		rdb: rdb,
	}
}

func (s *jsonStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redisrepo: encode %s: %w", key, err)
	}

	return s.rdb.Set(ctx, key, encoded, ttl).Err()
}

func (s *jsonStore) Get(ctx context.Context, key string) *redis.StringCmd {
	return s.rdb.Get(ctx, key)
}

// Get decodes the JSON value cached at key. found is false on a cache miss.
func Get[T any](ctx context.Context, r Default, key string) (value *T, found bool, err error) {
	raw, err := r.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false, fmt.Errorf("redisrepo: decode %s: %w", key, err)
	}

	return &decoded, true, nil
}
