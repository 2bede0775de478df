package abstract

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"svdata-hq/svast/pkg/svast/concrete"
)

// DefaultCacheTrees is the number of trees a Cache keeps views for.
const DefaultCacheTrees = 64

// Cache memoises views per tree. Entries are keyed by the identity of the
// tree root, so views derived from one tree are never served for another;
// replacing a tree means using its new root (or calling Invalidate on the
// old one). Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	trees    *lru.Cache
	observer CacheObserver
}

// CacheObserver receives cache events. The metrics collector implements it.
// Methods are called with the cache lock held and must not call back into
// the cache.
type CacheObserver interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
	RecordCacheEviction(cache string)
}

// cacheName labels events reported to a CacheObserver.
const cacheName = "abstract_views"

type treeViews struct {
	types map[concrete.DataType]Type
}

// NewCache creates a cache holding views for up to maxTrees trees.
func NewCache(maxTrees int) *Cache {
	if maxTrees <= 0 {
		maxTrees = DefaultCacheTrees
	}
	c := &Cache{trees: lru.New(maxTrees)}
	c.trees.OnEvicted = func(lru.Key, interface{}) {
		if c.observer != nil {
			c.observer.RecordCacheEviction(cacheName)
		}
	}
	return c
}

// Observe installs o as the event observer. Passing nil removes it.
func (c *Cache) Observe(o CacheObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = o
}

// Of returns the view of dt, a data type inside the tree rooted at root.
func (c *Cache) Of(root concrete.Node, dt concrete.DataType) Type {
	c.mu.Lock()
	views := c.viewsLocked(root)
	if t, ok := views.types[dt]; ok {
		c.record(true)
		c.mu.Unlock()
		return t
	}
	c.record(false)
	c.mu.Unlock()

	// Derive outside the lock; a racing derivation yields an equal view.
	t := Of(dt)

	c.mu.Lock()
	defer c.mu.Unlock()
	views = c.viewsLocked(root)
	if existing, ok := views.types[dt]; ok {
		return existing
	}
	views.types[dt] = t
	return t
}

// Integral returns the cached integral view of it within root.
func (c *Cache) Integral(root concrete.Node, it *concrete.IntegerType) *Integral {
	return c.Of(root, it).(*Integral)
}

// Invalidate drops every view derived from the tree rooted at root.
func (c *Cache) Invalidate(root concrete.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees.Remove(root)
}

// Len returns the number of trees with cached views.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trees.Len()
}

// Views returns the number of views cached for root.
func (c *Cache) Views(root concrete.Node) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.trees.Get(root); ok {
		return len(v.(*treeViews).types)
	}
	return 0
}

func (c *Cache) record(hit bool) {
	switch {
	case c.observer == nil:
	case hit:
		c.observer.RecordCacheHit(cacheName)
	default:
		c.observer.RecordCacheMiss(cacheName)
	}
}

func (c *Cache) viewsLocked(root concrete.Node) *treeViews {
	if v, ok := c.trees.Get(root); ok {
		return v.(*treeViews)
	}
	views := &treeViews{types: make(map[concrete.DataType]Type)}
	c.trees.Add(root, views)
	return views
}
