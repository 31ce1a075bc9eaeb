package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching gateway responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the call kind and its inputs (prompt text,
// image bytes, search query). Inputs are hashed so keys stay filename-safe
// regardless of payload size.
func Key(kind string, parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return "cropdoctor:v1:" + kind + ":" + hex.EncodeToString(h.Sum(nil))
}
