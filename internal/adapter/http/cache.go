package http

import "sync"

// chartCache is a thread-safe LRU cache for rendered chart PNGs, keyed by
// chart name (plus species for per-species charts). Rendering a figure
// costs tens of milliseconds, so repeat views hit memory instead.
type chartCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	key  string
	png  []byte
	prev *cacheEntry
	next *cacheEntry
}

func newChartCache(maxEntries int) *chartCache {
	return &chartCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func (c *chartCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.png, true
}

func (c *chartCache) put(key string, png []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.png = png
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{key: key, png: png}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

// purge drops every entry, used when the dataset is replaced.
func (c *chartCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.head = nil
	c.tail = nil
}

func (c *chartCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *chartCache) addToFront(e *cacheEntry) {
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

func (c *chartCache) remove(e *cacheEntry) {
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

func (c *chartCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
