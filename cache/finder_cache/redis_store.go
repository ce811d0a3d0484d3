package finder_cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the tagged key/value cache behind the finder cache builder.
// Tag membership lives in a redis set so purge-by-tag can delete every entry
// in one pass.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func tagKey(tag string) string {
	return "finder:tag:" + tag
}

func (s *RedisStore) SaveWithTag(ctx context.Context, key string, payload []byte, tag string, ttl time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, payload, ttl)
	pipe.SAdd(ctx, tagKey(tag), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool) {
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors are both cache misses
		return nil, false
	}
	return payload, true
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisStore) PurgeTag(ctx context.Context, tag string) error {
	members, err := s.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}
	keys := append(members, tagKey(tag))
	return s.rdb.Del(ctx, keys...).Err()
}
