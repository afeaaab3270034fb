package imageio

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/pixel-match-go/match"
)

// Cache keeps recently decoded rasters keyed by file path. Automation loops
// match the same template files against every frame; decoding them once is
// the difference between microseconds and milliseconds per search. Rasters
// are immutable, so sharing a cached instance across searches is safe.
type Cache struct {
	entries *lru.Cache[string, *match.Gray]
}

// NewCache builds a cache holding up to size decoded rasters.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, *match.Gray](size)
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Open returns the raster for path, decoding on miss. A file modified after
// its first decode keeps serving the cached raster until evicted or purged.
func (c *Cache) Open(path string) (*match.Gray, error) {
	if g, ok := c.entries.Get(path); ok {
		return g, nil
	}
	g, err := Open(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, g)
	return g, nil
}

// Purge drops every cached raster.
func (c *Cache) Purge() { c.entries.Purge() }

// Len reports the number of cached rasters.
func (c *Cache) Len() int { return c.entries.Len() }
