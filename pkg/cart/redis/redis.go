// Package redis keeps session carts in Redis. Each cart expires together
// with the session that owns it.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"lightshop/pkg/cart"
	"lightshop/pkg/logger"
)

const keyPrefix = "cart:"

// Store is a Redis-backed cart.Store.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New returns a store over client. Saved carts expire after ttl without
// activity.
func New(client *goredis.Client, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{client: client, ttl: ttl, log: log}
}

// NewClient accepts either a redis:// URL or a plain host:port.
func NewClient(addr string) *goredis.Client {
	opts, err := goredis.ParseURL(addr)
	if err != nil {
		opts = &goredis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}
	return goredis.NewClient(opts)
}

// WaitReady pings Redis until it answers, doubling the wait between
// attempts up to max.
func (s *Store) WaitReady(ctx context.Context, attempts int, max time.Duration) error {
	wait := 250 * time.Millisecond
	var err error
	for i := 1; i <= attempts; i++ {
		if err = s.Ping(ctx); err == nil {
			s.log.Info(ctx, "redis ready", "attempt", i)
			return nil
		}
		s.log.Warn(ctx, "redis not ready", "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		if wait *= 2; wait > max {
			wait = max
		}
	}
	return errors.Wrapf(err, "redis unavailable after %d attempts", attempts)
}

// Load returns the items saved for sessionID. Reading a cart pushes its
// expiry forward the same way the session cookie is renewed.
func (s *Store) Load(ctx context.Context, sessionID string) ([]cart.Item, error) {
	val, err := s.client.GetEx(ctx, keyPrefix+sessionID, s.ttl).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get cart")
	}
	var items []cart.Item
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return items, nil
}

// Save replaces the items of sessionID and refreshes its expiry. Saving no
// items removes the key.
func (s *Store) Save(ctx context.Context, sessionID string, items []cart.Item) error {
	if len(items) == 0 {
		return s.Delete(ctx, sessionID)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set cart")
	}
	return nil
}

// Delete removes the cart of sessionID.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "redis del cart")
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
