package cache

import (
	"container/list"
	"sync"
	"time"

	"getmait/models"
)

// Snapshot is one tenant's storefront data, fetched in a single load sequence.
type Snapshot struct {
	Store models.Store
	Menu  []models.MenuItem
}

// StoreCache keeps recently served storefront snapshots keyed by slug, so a
// burst of page loads for one tenant does not hammer the backend. Entries
// expire after a short TTL and the least recently used slug is evicted when
// the cache is full. Safe for concurrent use.
type StoreCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	maxItems int // 0 = unlimited
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
}

type entry struct {
	slug string
	snap Snapshot
	exp  time.Time
	elem *list.Element
}

// New creates a StoreCache and starts its sweeper goroutine.
func New(ttl time.Duration, maxItems int) *StoreCache {
	c := &StoreCache{
		ttl:      ttl,
		maxItems: maxItems,
		items:    make(map[string]*entry),
		order:    list.New(),
	}
	go c.sweep(time.Minute)
	return c
}

// Get returns the snapshot for slug if present and not expired.
func (c *StoreCache) Get(slug string) (Snapshot, bool) {
	if c == nil {
		return Snapshot{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[slug]
	if !ok {
		return Snapshot{}, false
	}
	if time.Now().After(e.exp) {
		c.remove(slug)
		return Snapshot{}, false
	}
	c.order.MoveToFront(e.elem)
	return e.snap, true
}

// Put stores a snapshot for slug, evicting the LRU slug when over capacity.
func (c *StoreCache) Put(slug string, snap Snapshot) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[slug]; ok {
		e.snap = snap
		e.exp = time.Now().Add(c.ttl)
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{slug: slug, snap: snap, exp: time.Now().Add(c.ttl)}
	e.elem = c.order.PushFront(e)
	c.items[slug] = e
	for c.maxItems > 0 && c.order.Len() > c.maxItems {
		c.evictLRU()
	}
}

// Invalidate drops one slug.
func (c *StoreCache) Invalidate(slug string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(slug)
}

// Len reports the number of cached slugs, expired or not.
func (c *StoreCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *StoreCache) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now()
		c.mu.Lock()
		for slug, e := range c.items {
			if now.After(e.exp) {
				c.remove(slug)
			}
		}
		c.mu.Unlock()
	}
}

// remove and evictLRU require c.mu held.
func (c *StoreCache) remove(slug string) {
	if e, ok := c.items[slug]; ok {
		c.order.Remove(e.elem)
		delete(c.items, slug)
	}
}

func (c *StoreCache) evictLRU() {
	back := c.order.Back()
	if back == nil {
		return
	}
	e := back.Value.(*entry)
	c.order.Remove(back)
	delete(c.items, e.slug)
}
