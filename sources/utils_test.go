package sources

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRateLimitPerSecond(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	pool := NewRedisPool(addr)
	defer pool.Close()

	conn := pool.Get()
	defer conn.Close()
	_, err := conn.Do("DEL", "global_ratelimit_per_second_amazontest")
	require.NoError(t, err)

	ok, err := CheckRateLimitPerSecond(pool, "amazontest")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = conn.Do("SET", "global_ratelimit_per_second_amazontest", 1000)
	require.NoError(t, err)
	defer conn.Do("DEL", "global_ratelimit_per_second_amazontest")

	ok, err = CheckRateLimitPerSecond(pool, "amazontest")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, WaitForRateLimit(context.Background(), pool, "amazontest", 0))
}

func TestCheckRateLimitRequiresSource(t *testing.T) {
	_, err := CheckRateLimitPerSecond(NewRedisPool("127.0.0.1:0"), "")
	assert.Error(t, err)
	assert.NoError(t, WaitForRateLimit(context.Background(), nil, "amazon", 3))
}
