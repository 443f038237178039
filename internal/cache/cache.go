// Package cache implements the bounded LRU queue of section 4.5, shared
// by the history and preload roles: FIFO with move-to-tail on access.
package cache

import (
	"container/list"
	"sync"

	"github.com/swayview/swayview/internal/imageio"
)

// Cache is a bounded queue of *imageio.Image handles keyed by source.
// Capacity is fixed at construction; put evicts from the head when
// full, freeing the evicted image's frames and thumbnail. Zero
// capacity caches silently discard every put.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[string]*list.Element
}

// New returns a cache with the given capacity.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Put appends img to the tail, moving it there if already present.
// When at capacity, the head entry is evicted and its decoded data
// freed via imageio.MaskAll.
func (c *Cache) Put(img *imageio.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity <= 0 {
		return
	}
	if el, ok := c.index[img.Source]; ok {
		c.order.MoveToBack(el)
		el.Value = img
		return
	}
	el := c.order.PushBack(img)
	c.index[img.Source] = el
	if c.order.Len() > c.capacity {
		c.evictHead()
	}
}

func (c *Cache) evictHead() {
	front := c.order.Front()
	if front == nil {
		return
	}
	evicted := front.Value.(*imageio.Image)
	evicted.Free(imageio.MaskAll)
	delete(c.index, evicted.Source)
	c.order.Remove(front)
}

// Take removes and returns the entry for source, or nil if absent.
func (c *Cache) Take(source string) *imageio.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[source]
	if !ok {
		return nil
	}
	img := el.Value.(*imageio.Image)
	delete(c.index, source)
	c.order.Remove(el)
	return img
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Sources returns the cached source strings head-to-tail (oldest
// first), for tests and diagnostics.
func (c *Cache) Sources() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*imageio.Image).Source)
	}
	return out
}
