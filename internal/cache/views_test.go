package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T) *ViewCounter {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewViewCounterWithClient(client)
}

func TestViewCounter_Hit(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	n, err := counter.Hit(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = counter.Hit(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = counter.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestViewCounter_GetUnknownPost(t *testing.T) {
	counter := newTestCounter(t)

	n, err := counter.Get(context.Background(), "never-viewed")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestViewCounter_GetMany(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := counter.Hit(ctx, "post-a")
		require.NoError(t, err)
	}
	_, err := counter.Hit(ctx, "post-b")
	require.NoError(t, err)

	counts, err := counter.GetMany(ctx, []string{"post-a", "post-b", "post-c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["post-a"])
	assert.Equal(t, int64(1), counts["post-b"])
	assert.Equal(t, int64(0), counts["post-c"])

	counts, err = counter.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestViewCounter_Forget(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	_, err := counter.Hit(ctx, "post-1")
	require.NoError(t, err)
	require.NoError(t, counter.Forget(ctx, "post-1"))

	n, err := counter.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
