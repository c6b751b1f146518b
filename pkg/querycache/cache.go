// Package querycache is a keyed cache of query results with per-key subscribers.
// Invalidating a key drops the stored result and tells every subscriber of that key
// to re-run its query.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Key identifies one cached query, e.g. ("items", roomID).
type Key struct {
	Name  string `json:"name"`
	Param string `json:"param"`
}

func NewKey(name string, param fmt.Stringer) Key {
	return Key{Name: name, Param: param.String()}
}

func (k Key) String() string {
	return "query:" + k.Name + ":" + k.Param
}

// Store persists serialized results. *repositories.RedisCacheRepository satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Subscriber is called after its key has been invalidated.
type Subscriber func(ctx context.Context, key Key)

type subscription struct {
	id int
	fn Subscriber
}

type Cache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	nextID      int
	subscribers map[Key][]subscription
	wildcard    []subscription
	generations map[Key]uint64
}

func New(store Store, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		store:       store,
		ttl:         ttl,
		logger:      logger,
		subscribers: make(map[Key][]subscription),
		generations: make(map[Key]uint64),
	}
}

// Subscribe registers fn for key and returns a function that removes it.
func (c *Cache) Subscribe(key Key, fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subscribers[key] = append(c.subscribers[key], subscription{id: id, fn: fn})
	return func() { c.unsubscribe(key, id) }
}

// SubscribeAll registers fn for every key.
func (c *Cache) SubscribeAll(fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.wildcard = append(c.wildcard, subscription{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.wildcard = without(c.wildcard, id)
	}
}

func (c *Cache) unsubscribe(key Key, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := without(c.subscribers[key], id)
	if len(subs) == 0 {
		delete(c.subscribers, key)
		return
	}
	c.subscribers[key] = subs
}

func without(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

func (c *Cache) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// Invalidate clears every key and then notifies its subscribers.
// Store failures are logged; subscribers are notified regardless.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) {
	if len(keys) == 0 {
		return
	}

	raw := make([]string, len(keys))
	c.mu.Lock()
	for i, k := range keys {
		raw[i] = k.String()
		c.generations[k]++
	}
	c.mu.Unlock()

	if err := c.store.Del(ctx, raw...); err != nil {
		c.logger.Error("querycache: failed to clear entries", zap.Strings("keys", raw), zap.Error(err))
	}

	for _, k := range keys {
		for _, sub := range c.subscribersOf(k) {
			c.notify(ctx, k, sub)
		}
	}
}

func (c *Cache) subscribersOf(key Key) []subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := make([]subscription, 0, len(c.subscribers[key])+len(c.wildcard))
	subs = append(subs, c.subscribers[key]...)
	subs = append(subs, c.wildcard...)
	return subs
}

func (c *Cache) notify(ctx context.Context, key Key, sub subscription) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("querycache: subscriber panicked", zap.String("key", key.String()), zap.Any("panic", p))
		}
	}()
	sub.fn(ctx, key)
}

// Fetch returns the cached value for key, or runs load and caches its result.
// A result loaded across an invalidation of the same key is returned but not stored.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	if cached, err := c.store.Get(ctx, key.String()); err == nil {
		var value T
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			return value, nil
		}
		c.logger.Warn("querycache: dropping undecodable entry", zap.String("key", key.String()))
	}

	gen := c.generation(key)
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c.generation(key) != gen {
		return value, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("querycache: result is not serializable", zap.String("key", key.String()), zap.Error(err))
		return value, nil
	}
	if err := c.store.Set(ctx, key.String(), string(encoded), c.ttl); err != nil {
		c.logger.Warn("querycache: failed to store entry", zap.String("key", key.String()), zap.Error(err))
		return value, nil
	}
	// An invalidation between the check above and Set may have run its Del first.
	if c.generation(key) != gen {
		if err := c.store.Del(ctx, key.String()); err != nil {
			c.logger.Warn("querycache: failed to drop stale entry", zap.String("key", key.String()), zap.Error(err))
		}
	}
	return value, nil
}
