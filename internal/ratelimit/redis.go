package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWindowScript increments the per-identity counter and arms the window
// TTL in the same round trip. Doing these as two commands leaves a key
// without expiry when the second one fails, locking the identity out for
// good once it reaches max.
var incrWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// scriptingClient is the slice of the redis client the limiter needs.
type scriptingClient interface {
	redis.Scripter
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisLimiter is the shared-store variant for multi-instance deployments:
// one scripted INCR+EXPIRE per check. Fails open when Redis is unreachable so
// search availability does not depend on the limiter backend.
type RedisLimiter struct {
	client scriptingClient
	window time.Duration
	max    int
}

func NewRedisLimiter(client scriptingClient, window time.Duration, max int) *RedisLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
	}
}

func (l *RedisLimiter) Check(ctx context.Context, identity string) (Result, error) {
	key := fmt.Sprintf("ratelimit:search:%s", identity)

	windowSecs := int(l.window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}

	count, err := incrWindowScript.Run(ctx, l.client, []string{key}, windowSecs).Int64()
	if err != nil {
		return Result{Allowed: true}, err
	}

	if count > int64(l.max) {
		ttl, err := l.client.TTL(ctx, key).Result()
		if err != nil || ttl <= 0 {
			ttl = l.window
		}
		secs := (ttl + time.Second - 1) / time.Second
		if secs < 1 {
			secs = 1
		}
		return Result{Allowed: false, RetryAfter: secs * time.Second}, nil
	}

	return Result{Allowed: true}, nil
}
