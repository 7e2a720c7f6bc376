package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of catalog configurations kept in memory.
const DefaultCacheSize = 4

// Key identifies one catalog/index build.
type Key struct {
	Step        Step
	MinContrast float64
	BucketWidth float64
}

// String returns a compact, filename-safe representation of the key.
func (k Key) String() string {
	return fmt.Sprintf("step-%d-%d-%d_contrast-%g_bucket-%g", k.Step[0], k.Step[1], k.Step[2], k.MinContrast, k.BucketWidth)
}

// Cache builds each catalog configuration once and shares the resulting index.
// Entries are immutable, so callers may use them from any goroutine.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache
	logger  hclog.Logger
}

// NewCache creates a cache holding at most size configurations.
func NewCache(size int, logger hclog.Logger) (*Cache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	return &Cache{
		entries: entries,
		logger:  logger.Named("catalog"),
	}, nil
}

// Get returns the index for key, building the catalog and index on first use.
func (c *Cache) Get(key Key) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries.Get(key); ok {
		return v.(*Index), nil
	}

	start := time.Now()
	cat, err := Build(key.Step, key.MinContrast)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	index, err := NewIndex(cat, key.BucketWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to build luminance index: %w", err)
	}

	c.logger.Debug("built catalog", "key", key.String(), "samples", cat.Len(), "buckets", index.Buckets(), "elapsed", time.Since(start))

	c.entries.Add(key, index)
	return index, nil
}

// Len returns the number of cached configurations.
func (c *Cache) Len() int {
	return c.entries.Len()
}
