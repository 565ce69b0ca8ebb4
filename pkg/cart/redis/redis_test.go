package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshop/pkg/cart"
	"lightshop/pkg/logger"
)

func newMiniStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, ttl, logger.NewNop()), mr
}

func exerciseStore(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.WaitReady(ctx, 3, time.Second))

	sid := uuid.NewString()
	items, err := s.Load(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, items)

	want := []cart.Item{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}
	require.NoError(t, s.Save(ctx, sid, want))

	got, err := s.Load(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ttl, err := s.client.TTL(ctx, keyPrefix+sid).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= s.ttl, "ttl %s", ttl)

	require.NoError(t, s.Save(ctx, sid, nil))
	n, err := s.client.Exists(ctx, keyPrefix+sid).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore(t *testing.T) {
	s, _ := newMiniStore(t, time.Minute)
	exerciseStore(t, s)
}

func TestStoreLive(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := NewClient(addr)
	defer client.Close()
	exerciseStore(t, New(client, time.Minute, logger.NewNop()))
}

func TestLoadRenewsExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniStore(t, time.Hour)
	want := []cart.Item{{ProductID: 3, Quantity: 1}}
	require.NoError(t, s.Save(ctx, "s1", want))

	mr.FastForward(50 * time.Minute)
	got, err := s.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"s1"))

	// 70 minutes after the last save, 20 after the last read.
	mr.FastForward(20 * time.Minute)
	got, err = s.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	mr.FastForward(time.Hour + time.Second)
	got, err = s.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniStore(t, time.Minute)
	require.NoError(t, s.Save(ctx, "s1", []cart.Item{{ProductID: 1, Quantity: 1}}))
	require.NoError(t, s.Save(ctx, "s2", []cart.Item{{ProductID: 2, Quantity: 4}}))

	require.NoError(t, s.Delete(ctx, "s1"))
	assert.False(t, mr.Exists(keyPrefix+"s1"))
	assert.True(t, mr.Exists(keyPrefix+"s2"))
	// Deleting a missing cart is not an error.
	require.NoError(t, s.Delete(ctx, "s1"))
}

func TestLoadCorruptCart(t *testing.T) {
	s, mr := newMiniStore(t, time.Minute)
	require.NoError(t, mr.Set(keyPrefix+"s1", "not json"))

	_, err := s.Load(context.Background(), "s1")
	assert.ErrorContains(t, err, "decode cart")
}

func TestWaitReadyGivesUp(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	s := New(client, time.Minute, logger.NewNop())
	err := s.WaitReady(context.Background(), 2, 10*time.Millisecond)
	assert.ErrorContains(t, err, "redis unavailable after 2 attempts")
}

func TestWaitReadyStopsOnCancel(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(client, time.Minute, logger.NewNop())
	assert.ErrorIs(t, s.WaitReady(ctx, 5, time.Second), context.Canceled)
}
