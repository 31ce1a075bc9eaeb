package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// New builds the cache backend selected by configuration. Returns nil when
// caching is disabled; callers treat a nil Cache as a pass-through.
func New(cfg model.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		dir = filepath.Join(home, ".cropdoctor", "cache")
	}

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute), nil
	case "disk":
		return NewDiskCache(dir, cfg.DiskTTL), nil
	case "layered":
		return NewLayeredCache(cfg.MemoryTTL, dir, cfg.DiskTTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk, layered)", cfg.Backend)
	}
}
