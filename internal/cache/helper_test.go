package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	var missed cachedThing
	assert.False(t, GetJSON(ctx, "thing:1", &missed), "miss on empty cache")

	SetJSON(ctx, "thing:1", cachedThing{ID: 1, Name: "first"}, time.Minute)

	var hit cachedThing
	require.True(t, GetJSON(ctx, "thing:1", &hit))
	assert.Equal(t, uint(1), hit.ID)
	assert.Equal(t, "first", hit.Name)
}

func TestGetJSON_CorruptEntryDropped(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("thing:1", "{not json"))

	var dest cachedThing
	assert.False(t, GetJSON(ctx, "thing:1", &dest))
	assert.False(t, mr.Exists("thing:1"), "corrupt entry is deleted")
}

func TestAside(t *testing.T) {
	t.Run("caches the loaded value", func(t *testing.T) {
		withTestRedis(t)
		ctx := context.Background()

		loads := 0
		load := func(dest *cachedThing) func() error {
			return func() error {
				loads++
				*dest = cachedThing{ID: 7, Name: "loaded"}
				return nil
			}
		}

		var first cachedThing
		require.NoError(t, Aside(ctx, "thing:7", &first, time.Minute, load(&first)))
		assert.Equal(t, 1, loads)

		var second cachedThing
		require.NoError(t, Aside(ctx, "thing:7", &second, time.Minute, load(&second)))
		assert.Equal(t, 1, loads, "second read served from cache")
		assert.Equal(t, "loaded", second.Name)
	})

	t.Run("load errors are not cached", func(t *testing.T) {
		mr := withTestRedis(t)
		ctx := context.Background()

		wantErr := errors.New("db down")
		var dest cachedThing
		err := Aside(ctx, "thing:8", &dest, time.Minute, func() error { return wantErr })
		assert.ErrorIs(t, err, wantErr)
		assert.False(t, mr.Exists("thing:8"))
	})

	t.Run("degrades to loader without redis", func(t *testing.T) {
		SetClient(nil)
		ctx := context.Background()

		var dest cachedThing
		err := Aside(ctx, "thing:9", &dest, time.Minute, func() error {
			dest = cachedThing{ID: 9}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, uint(9), dest.ID)
	})
}

func TestInvalidate(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, UserKey(1), cachedThing{ID: 1}, time.Minute)
	SetJSON(ctx, PostKey(2), cachedThing{ID: 2}, time.Minute)

	InvalidateUser(ctx, 1)
	InvalidatePost(ctx, 2)

	assert.False(t, mr.Exists(UserKey(1)))
	assert.False(t, mr.Exists(PostKey(2)))
}
