// Package querycache is a read-through cache for storefront queries. Admin
// mutations publish the entity they touched on the event bus; the cache
// subscribes and evicts every key scoped to that entity, so the next read
// refetches fresh rows.
package querycache

import (
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"golang.org/x/sync/singleflight"
)

// TopicInvalidate is the bus topic mutations publish entity names on.
const TopicInvalidate = "querycache:invalidate"

type entry struct {
	value   interface{}
	expires time.Time
}

type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	group   singleflight.Group
}

// New builds a cache with the given TTL and, when bus is non-nil, subscribes
// it to the invalidation topic.
func New(ttl time.Duration, bus EventBus.Bus) *Cache {
	c := &Cache{ttl: ttl, entries: make(map[string]entry)}
	if bus != nil {
		_ = bus.Subscribe(TopicInvalidate, c.InvalidateEntity)
	}
	return c
}

// Key builds a cache key scoped to an entity: "products:list:bags:1".
func Key(entity string, parts ...string) string {
	if len(parts) == 0 {
		return entity
	}
	return entity + ":" + strings.Join(parts, ":")
}

// Fetch returns the cached value for key or runs loader to fill it.
// Concurrent fetches of the same cold key are collapsed to one loader call.
func (c *Cache) Fetch(key string, loader func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.value, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := loader()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return value, nil
	})
	return v, err
}

// InvalidateEntity evicts every key scoped to entity.
func (c *Cache) InvalidateEntity(entity string) {
	prefix := entity + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == entity || strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of live entries, for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
