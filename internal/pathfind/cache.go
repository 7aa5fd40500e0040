package pathfind

import "container/list"

type cacheKey struct {
	sx, sy, gx, gy int
}

type cacheEntry struct {
	key   cacheKey
	path  Path
	found bool
}

// pathCache is a bounded least-recently-used cache of search results.
// Negative results ("no route") are cached too; they are just as expensive
// to recompute. The cache holds no locks; single-writer by construction.
type pathCache struct {
	capacity int
	order    *list.List // front = most recently used
	entries  map[cacheKey]*list.Element
}

func newPathCache(capacity int) *pathCache {
	if capacity < 1 {
		capacity = 1
	}
	return &pathCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[cacheKey]*list.Element, capacity),
	}
}

func (c *pathCache) get(key cacheKey) (Path, bool, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	c.order.MoveToFront(el)
	e := el.Value.(*cacheEntry)
	return e.path, e.found, true
}

func (c *pathCache) put(key cacheKey, path Path, found bool) {
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		e := el.Value.(*cacheEntry)
		e.path = path
		e.found = found
		return
	}

	el := c.order.PushFront(&cacheEntry{key: key, path: path, found: found})
	c.entries[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *pathCache) clear() {
	c.order.Init()
	for k := range c.entries {
		delete(c.entries, k)
	}
}

func (c *pathCache) len() int {
	return c.order.Len()
}
