package sources

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"
)

// CheckRateLimitPerSecond checks if the rate limit on source is not exceeded.
// A source without a configured limit is never limited.
func CheckRateLimitPerSecond(client *redis.Pool, source string) (bool, error) {
	// set key
	if source == "" {
		return false, fmt.Errorf("source not provided")
	}
	conn := client.Get()
	defer conn.Close()

	rateLimitKey := fmt.Sprintf("global_ratelimit_per_second_%s", source)
	limit, err := redis.Int64(conn.Do("GET", rateLimitKey))
	if err == redis.ErrNil {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	currTime := time.Now().Unix()
	key := fmt.Sprintf("ratelimit_per_second_%s_%d", source, currTime)
	// get number of requests already made
	conn.Send("MULTI")
	conn.Send("INCR", key)
	conn.Send("EXPIRE", key, 10)
	res, err := redis.Values(conn.Do("EXEC"))

	if err != nil {
		return false, err
	}
	if requestsMade, ok := res[0].(int64); ok {
		if requestsMade > limit {
			return false, nil
		}
	}
	return true, nil
}

// WaitForRateLimit blocks until a request slot is free for source, sleeping
// to the start of the next second between attempts
func WaitForRateLimit(ctx context.Context, client *redis.Pool, source string, maxRetry int) error {
	if client == nil {
		return nil
	}
	for attempt := 0; ; attempt++ {
		ok, err := CheckRateLimitPerSecond(client, source)
		if err != nil {
			return fmt.Errorf("RATELIMIT_CHECK_ERR: %v", err)
		}
		if ok {
			return nil
		}
		if attempt >= maxRetry {
			return fmt.Errorf("RATELIMIT_EXCEEDED_ERR: %s still limited after %d retries", source, maxRetry)
		}

		now := time.Now()
		wait := now.Truncate(time.Second).Add(time.Second).Sub(now)
		log.Printf("RATELIMIT_WAIT: Source: %s, Attempt: %d, Wait: %v\n", source, attempt+1, wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// NewRedisPool - pool of connections to addr
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
