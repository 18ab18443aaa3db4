package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWindowScript increments the counter, starts the window on the first
// hit and returns {count, pttl}. A key that lost its TTL gets a fresh one.
var incrWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RateStore is a fixed-window hit counter shared by every server instance.
type RateStore struct {
	client redis.Scripter
	prefix string
}

// NewRateStore creates a RateStore. Keys are stored as prefix + ":" + key.
func NewRateStore(client redis.Scripter, prefix string) *RateStore {
	return &RateStore{client: client, prefix: prefix}
}

func (s *RateStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Incr counts a hit atomically.
func (s *RateStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	res, err := incrWindowScript.Run(ctx, s.client, []string{s.key(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("rate limit incr: unexpected reply %v", res)
	}
	return int(res[0]), time.Duration(res[1]) * time.Millisecond, nil
}
