package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

// TestRateStore_Incr runs the Lua window against miniredis.
func TestRateStore_Incr(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRateStore(client, "health")
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, ttl, err := store.Incr(ctx, "rl:ip:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	}

	assert.True(t, mr.Exists("health:rl:ip:10.0.0.1"))

	count, _, err := store.Incr(ctx, "rl:ip:10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "keys are independent")
}

// TestRateStore_WindowResets starts over after the key expires.
func TestRateStore_WindowResets(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRateStore(client, "")
	ctx := context.Background()

	_, _, err := store.Incr(ctx, "k", 10*time.Second)
	require.NoError(t, err)
	_, _, err = store.Incr(ctx, "k", 10*time.Second)
	require.NoError(t, err)

	mr.FastForward(11 * time.Second)

	count, ttl, err := store.Incr(ctx, "k", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 10*time.Second, ttl)
}

// TestRateStore_KeyWithoutTTLIsRepaired puts a TTL back on a counter that lost it.
func TestRateStore_KeyWithoutTTLIsRepaired(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRateStore(client, "")
	require.NoError(t, mr.Set("k", "5"))

	count, ttl, err := store.Incr(context.Background(), "k", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, time.Minute, ttl)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

// TestRateStore_Mocked checks the script call and its reply parsing.
func TestRateStore_Mocked(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectEvalSha(incrWindowScript.Hash(), []string{"rl:ip:1.2.3.4"}, int64(600000)).
		SetVal([]interface{}{int64(101), int64(42000)})

	count, ttl, err := NewRateStore(rdb, "").Incr(context.Background(), "rl:ip:1.2.3.4", 10*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 101, count)
	assert.Equal(t, 42*time.Second, ttl)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRateStore_ErrorIsReturned surfaces Redis failures to the caller.
func TestRateStore_ErrorIsReturned(t *testing.T) {
	t.Parallel()

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	_, _, err := NewRateStore(rdb, "").Incr(context.Background(), "k", time.Minute)

	assert.Error(t, err)
}

// TestNewRedisClient pings on connect.
func TestNewRedisClient(t *testing.T) {
	log, hook := test.NewNullLogger()

	t.Run("reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr()}, log)

		require.NoError(t, err)
		assert.NoError(t, rdb.Ping(context.Background()).Err())
		_ = rdb.Close()
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		rdb, err := NewRedisClient(context.Background(), Config{Addr: addr}, log)

		assert.Error(t, err)
		assert.Nil(t, rdb)
		assert.Equal(t, "redis connection failed", hook.LastEntry().Message)
	})
}
