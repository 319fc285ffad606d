package cache

import "sync"

// Cache is a generic thread-safe cache with a soft limit.
// When the cache exceeds softLimit, the least recently used quarter of
// the entries is evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // Monotonic access counter
}

// cacheEntry holds a cached value with its access time.
type cacheEntry[V any] struct {
	value V
	atime int64 // Access time (tick value)
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// GetOrCreate returns the cached value or creates and stores it.
// create is called under lock so a key is never created twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if entry, ok := c.entries[key]; ok {
		entry.atime = c.tick
		return entry.value
	}

	value := create()
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return value
}

// Delete removes key from the cache.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// evictOldest removes entries until the cache is at 75% of softLimit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	targetSize := c.softLimit * 3 / 4
	if targetSize < 1 {
		targetSize = 1
	}
	toEvict := len(c.entries) - targetSize
	if toEvict <= 0 {
		return
	}

	type entry struct {
		key   K
		atime int64
	}
	entries := make([]entry, 0, len(c.entries))
	for key, e := range c.entries {
		entries = append(entries, entry{key: key, atime: e.atime})
	}

	// Selection sort is enough for the handful of fonts a document uses.
	for i := 0; i < toEvict && i < len(entries); i++ {
		minIdx := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].atime < entries[minIdx].atime {
				minIdx = j
			}
		}
		entries[i], entries[minIdx] = entries[minIdx], entries[i]
		delete(c.entries, entries[i].key)
	}
}
