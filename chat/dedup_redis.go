package chat

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// DefaultRedisDedupTTL bounds how long a message id is remembered in redis
const DefaultRedisDedupTTL = 10 * time.Minute

// RedisDedup shares the dedup window between api instances. Ids expire after ttl
// instead of being evicted by count. When redis is unreachable messages are accepted,
// a cache outage must not drop live chat.
type RedisDedup struct {
	pool   *redis.Pool
	ttl    time.Duration
	prefix string
}

// NewRedisPool dials redis lazily from a redis:// url
func NewRedisPool(url string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}
}

// NewRedisDedup creates a dedup cache backed by pool
func NewRedisDedup(pool *redis.Pool, ttl time.Duration) *RedisDedup {
	if ttl <= 0 {
		ttl = DefaultRedisDedupTTL
	}
	return &RedisDedup{
		pool:   pool,
		ttl:    ttl,
		prefix: "chat:dedup:",
	}
}

// ShouldAccept implements Deduplicator with SET NX EX
func (d *RedisDedup) ShouldAccept(id string) bool {
	conn := d.pool.Get()
	defer conn.Close()

	_, err := redis.String(conn.Do("SET", d.prefix+id, 1, "EX", int(d.ttl.Seconds()), "NX"))
	if errors.Is(err, redis.ErrNil) {
		return false
	}
	if err != nil {
		zap.S().Errorw("redis dedup check failed, accepting message",
			"id", id,
			"error", err,
		)
	}
	return true
}
