package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache defines the interface for memoizing values by key
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a namespace and its parts
func Key(namespace string, parts ...string) string {
	// \x00 cannot appear in spellings or phones, so joined parts never collide
	sum := xxhash.Sum64String(strings.Join(parts, "\x00"))
	return fmt.Sprintf("portmanteau:v1:%s:%016x", namespace, sum)
}
