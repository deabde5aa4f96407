// Package lru is a fixed-capacity least-recently-used cache safe for
// concurrent use.
package lru

import "sync"

// DefaultCapacity is the damage-cache size scorers share within a turn.
const DefaultCapacity = 10_000

// entry is one slot of the ring. prev/next link slots in access order.
type entry[K comparable, V any] struct {
	key        K
	val        V
	prev, next int
}

// Cache keeps up to cap entries in a preallocated ring, evicting the least
// recently used one when full. Get counts as a use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	slots   []entry[K, V]
	index   map[K]int
	head    int // most recent, -1 when empty
	tail    int // least recent
	cap     int
	hits    uint64
	misses  uint64
	evicted uint64
}

// New returns an empty cache. Capacities below 1 become 1.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	capacity = max(capacity, 1)
	return &Cache[K, V]{
		slots: make([]entry[K, V], 0, capacity),
		index: make(map[K]int, capacity),
		head:  -1,
		tail:  -1,
		cap:   capacity,
	}
}

// Get returns the cached value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(i)
	return c.slots[i].val, true
}

// Put inserts or replaces key. When the cache is full the least recently
// used entry's slot is reused.
func (c *Cache[K, V]) Put(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[key]; ok {
		c.slots[i].val = val
		c.moveToFront(i)
		return
	}
	var i int
	if len(c.slots) < c.cap {
		c.slots = append(c.slots, entry[K, V]{key: key, val: val, prev: -1, next: -1})
		i = len(c.slots) - 1
	} else {
		i = c.tail
		c.unlink(i)
		delete(c.index, c.slots[i].key)
		c.slots[i] = entry[K, V]{key: key, val: val, prev: -1, next: -1}
		c.evicted++
	}
	c.index[key] = i
	c.pushFront(i)
}

// GetOrCompute returns the cached value or stores and returns fn's result.
// fn runs without the lock held, so two callers racing on the same key may
// both compute it; the last one stored wins.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := fn()
	c.Put(key, v)
	return v
}

// Len reports the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap reports the capacity.
func (c *Cache[K, V]) Cap() int { return c.cap }

// Clear drops every entry and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = c.slots[:0]
	clear(c.index)
	c.head, c.tail = -1, -1
	c.hits, c.misses, c.evicted = 0, 0, 0
}

// Stats is a point-in-time view of cache counters.
type Stats struct {
	Len     int
	Hits    uint64
	Misses  uint64
	Evicted uint64
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: len(c.index), Hits: c.hits, Misses: c.misses, Evicted: c.evicted}
}

func (c *Cache[K, V]) unlink(i int) {
	e := &c.slots[i]
	if e.prev >= 0 {
		c.slots[e.prev].next = e.next
	} else {
		c.head = e.next
	}
	if e.next >= 0 {
		c.slots[e.next].prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = -1, -1
}

func (c *Cache[K, V]) pushFront(i int) {
	e := &c.slots[i]
	e.prev = -1
	e.next = c.head
	if c.head >= 0 {
		c.slots[c.head].prev = i
	}
	c.head = i
	if c.tail < 0 {
		c.tail = i
	}
}

func (c *Cache[K, V]) moveToFront(i int) {
	if c.head == i {
		return
	}
	c.unlink(i)
	c.pushFront(i)
}
