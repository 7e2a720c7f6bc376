package theme

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tincture/internal/catalog"
)

// Generator searches one catalog configuration for shades and palettes.
// It holds no mutable state and may be shared between goroutines.
type Generator struct {
	config Config
	index  *catalog.Index
	logger hclog.Logger
}

// NewGenerator validates config and fetches its catalog from cache, building it on first use.
// A nil cache builds a private one; a nil logger discards output.
func NewGenerator(config Config, cache *catalog.Cache, logger hclog.Logger) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if cache == nil {
		var err error
		if cache, err = catalog.NewCache(1, logger); err != nil {
			return nil, err
		}
	}

	index, err := cache.Get(config.CatalogKey())
	if err != nil {
		return nil, err
	}

	return &Generator{
		config: config,
		index:  index,
		logger: logger.Named("theme"),
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Index returns the luminance index the generator searches.
func (g *Generator) Index() *catalog.Index {
	return g.index
}
