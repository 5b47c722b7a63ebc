package icon

import (
	"fmt"
	"image"
	"sync"
)

const defaultMaxCacheSize = 32

// Cache keeps the most recently rasterized icons, evicting the least
// recently used one when full.
type Cache struct {
	mu      sync.Mutex
	images  map[string]*image.RGBA
	order   []string // tracks use order for LRU eviction
	maxSize int
}

func NewCache() *Cache {
	return NewCacheWithSize(defaultMaxCacheSize)
}

func NewCacheWithSize(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	return &Cache{
		images:  make(map[string]*image.RGBA),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Rasterize returns the cached image for (key, size) or renders svg at size×size.
func (c *Cache) Rasterize(key, svg string, size int) (*image.RGBA, error) {
	cacheKey := fmt.Sprintf("%s@%d", key, size)
	if img := c.Get(cacheKey); img != nil {
		return img, nil
	}

	img, err := Rasterize(svg, size, size)
	if err != nil {
		return nil, err
	}
	c.Set(cacheKey, img)
	return img, nil
}

func (c *Cache) Get(key string) *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, exists := c.images[key]; exists {
		// Move to end (most recently used)
		c.moveToEnd(key)
		return img
	}
	return nil
}

func (c *Cache) Set(key string, img *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If key already exists, just update and move to end
	if _, exists := c.images[key]; exists {
		c.images[key] = img
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.images[key] = img
	c.order = append(c.order, key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *Cache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.images, oldest)
}

// Purge drops every cached image.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string]*image.RGBA)
	c.order = c.order[:0]
}
