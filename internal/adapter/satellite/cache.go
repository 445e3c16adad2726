package satellite

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/couchcryptid/metar-etl-service/internal/geo"
)

// CachedLocator wraps a TileLocator with an in-memory LRU cache. Station
// positions are static, so a location set resolves to the same tile
// footprints on every poll cycle.
type CachedLocator struct {
	inner geo.TileLocator
	cache *lruCache
}

// NewCachedLocator creates a cache decorator around a tile locator.
func NewCachedLocator(inner geo.TileLocator, maxEntries int) *CachedLocator {
	return &CachedLocator{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedLocator) ContainingGeometry(ctx context.Context, locations geo.FeatureCollection) (geo.FeatureCollection, error) {
	key := locationKey(locations)
	if result, ok := c.cache.get(key); ok {
		return result, nil
	}
	result, err := c.inner.ContainingGeometry(ctx, locations)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so transient empty responses can be retried.
	if len(result.Features) > 0 {
		c.cache.put(key, result)
	}
	return result, nil
}

// locationKey derives a cache key from the feature IDs. Order within the
// collection is irrelevant to the resolved geometry.
func locationKey(locations geo.FeatureCollection) string {
	ids := make([]string, len(locations.Features))
	for i, f := range locations.Features {
		ids[i] = f.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// lruCache is a simple thread-safe LRU cache for resolved tile geometry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value geo.FeatureCollection
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (geo.FeatureCollection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return geo.FeatureCollection{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value geo.FeatureCollection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
