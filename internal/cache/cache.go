// Package cache defines a small byte-oriented cache abstraction with
// in-process and Redis backends.
package cache

import "time"

// Cache is the minimal surface the rest of the codebase depends on.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
