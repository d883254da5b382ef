// Package cache stores decoded DJP reference records between validation
// requests, keyed by validation URL. A memory layer answers repeated
// validations within a process; the disk layer survives restarts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a validation URL. Hashing keeps query
// strings and invoice serials out of filenames.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "efaktur:v1:" + hex.EncodeToString(sum[:])
}
