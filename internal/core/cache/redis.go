package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

// GetOrLoad 读缓存，miss 时经 singleflight 合并回源并回填。
// redis 不可用时退化为直接回源（Set 的错误忽略）。
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil || c.RDB == nil {
		return load(ctx)
	}
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 写路径失效；best-effort，失败只会导致短暂读到旧值
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.RDB == nil || len(keys) == 0 {
		return
	}
	_ = c.RDB.Del(ctx, keys...).Err()
}
