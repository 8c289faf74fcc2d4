package imagepkg

import (
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// BitmapCache is a thread-safe LRU of decoded bitmaps keyed by asset URL.
//
// Cached images are shared between renders and must be treated as read-only;
// Resize and CircularMask always allocate new images.
type BitmapCache struct {
	entries *lru.Cache[string, image.Image]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewBitmapCache returns a cache holding up to capacity bitmaps, or nil when
// capacity is not positive. A nil *BitmapCache is valid and caches nothing.
func NewBitmapCache(capacity int) *BitmapCache {
	if capacity <= 0 {
		return nil
	}
	entries, err := lru.New[string, image.Image](capacity)
	if err != nil {
		return nil
	}
	return &BitmapCache{entries: entries}
}

// Get returns the bitmap cached for key.
func (c *BitmapCache) Get(key string) (image.Image, bool) {
	if c == nil {
		return nil, false
	}
	img, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return img, true
}

// Set stores img under key, evicting the least recently used entry when full.
func (c *BitmapCache) Set(key string, img image.Image) {
	if c == nil || img == nil {
		return
	}
	c.entries.Add(key, img)
}

// Len returns the number of cached bitmaps.
func (c *BitmapCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns the hit and miss counts.
func (c *BitmapCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
