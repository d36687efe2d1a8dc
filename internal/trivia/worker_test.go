package trivia

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCacheWarmerRefreshesUntilCanceled(t *testing.T) {
	store := newMemStore()
	cache := &memoryCache{}
	svc := newTestService(t, store, cache, ServiceOptions{})

	warmer := NewCacheWarmer(svc, 10*time.Millisecond, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	err := warmer.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, cache.setCount(), 2, "refresh runs immediately and then on each tick")
	assert.Equal(t, Categories{1: "Science", 2: "Art", 3: "Geography"}, cache.value)
}

func TestCacheWarmerWithoutServiceReturns(t *testing.T) {
	warmer := NewCacheWarmer(nil, 0, zerolog.New(io.Discard))
	assert.Equal(t, 5*time.Minute, warmer.interval)
	assert.NoError(t, warmer.Run(context.Background()))
}
