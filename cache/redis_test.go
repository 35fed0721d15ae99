package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-codec/config"
	"geohash-codec/models"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := InitializeRedis(context.Background(), config.RedisConfig{Addr: mr.Addr(), TTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestDecodedRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.GetDecoded(ctx, "c216ne")
	require.NoError(t, err)
	assert.False(t, ok)

	want := &models.Coordinate{Hash: "c216ne", Latitude: 45.37, Longitude: -121.7, Precision: 0.0054931640625}
	require.NoError(t, c.SetDecoded(ctx, want))

	got, ok, err := c.GetDecoded(ctx, "c216ne")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	assert.Equal(t, time.Hour, mr.TTL("geohash:decode:c216ne"))
}

func TestEncodedRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	res := &models.EncodeResult{Hash: "dhwu6sw9f5t", Latitude: 26.08461, Longitude: -80.38893, Precision: 1e-6, Length: 11}
	require.NoError(t, c.SetEncoded(ctx, 1e-6, 0, res))

	got, ok, err := c.GetEncoded(ctx, 26.08461, -80.38893, 1e-6, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, res, got)

	// A different request shape is a different key.
	_, ok, err = c.GetEncoded(ctx, 26.08461, -80.38893, 0, 11)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("geohash:decode:zzz", "not json"))

	_, ok, err := c.GetDecoded(context.Background(), "zzz")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestInitializeRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := InitializeRedis(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), time.Minute)
	defer c.Close()
	mr.Close()

	_, _, err := c.GetDecoded(context.Background(), "c216ne")
	assert.Error(t, err)
}
