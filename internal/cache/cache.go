package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/paperclass/internal/model"
)

// Cache stores labels keyed by normalized record text
type Cache interface {
	Get(key string) (model.Label, bool)
	Set(key string, label model.Label, ttl time.Duration) error
}

// CacheKey generates a cache key from a record's search text
func CacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "paperclass:v1:" + hex.EncodeToString(hash[:])
}

// RecordKey generates a cache key from a record's fields
func RecordKey(r model.Record) string {
	return CacheKey(r.Abstract + "\x00" + r.Title + "\x00" + r.Journal)
}
