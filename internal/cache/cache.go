package cache

import (
	"fmt"
	"time"

	"github.com/ppiankov/mftree/internal/genealogy"
)

// Cache stores encoded reports. Generation is a pure function of its
// inputs, so an entry never goes stale; TTLs only bound storage.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Key derives the cache key of a run from the config hash and depth.
func Key(cfg genealogy.Config, max genealogy.Generation) string {
	return fmt.Sprintf("mftree:v1:%016x:%d", genealogy.HashConfig(cfg), max.Uint64())
}
