package trivia

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewCategoryCacheDefaultsTTL(t *testing.T) {
	cache := NewCategoryCache(unreachableRedis(t), 0)
	assert.Equal(t, defaultCategoryCacheTTL, cache.ttl)

	cache = NewCategoryCache(unreachableRedis(t), time.Minute)
	assert.Equal(t, time.Minute, cache.ttl)
}

func TestServiceServesCategoriesWhenRedisIsDown(t *testing.T) {
	store := newMemStore()
	cache := NewCategoryCache(unreachableRedis(t), time.Minute)
	svc := newTestService(t, store, cache, ServiceOptions{})

	_, err := cache.Get(context.Background())
	assert.Error(t, err)

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Science", got[1])
}
