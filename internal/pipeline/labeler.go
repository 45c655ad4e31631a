package pipeline

import (
	"sync/atomic"

	"github.com/ppiankov/paperclass/internal/cache"
	"github.com/ppiankov/paperclass/internal/classify"
	"github.com/ppiankov/paperclass/internal/model"
)

// cachedLabeler memoizes labels for records with identical text.
type cachedLabeler struct {
	classifier *classify.Classifier
	cache      cache.Cache
	hits       int64
	misses     int64
}

func newCachedLabeler(c *classify.Classifier, store cache.Cache) *cachedLabeler {
	return &cachedLabeler{classifier: c, cache: store}
}

// Label implements worker.Labeler
func (l *cachedLabeler) Label(r model.Record) model.Label {
	key := cache.RecordKey(r)
	if label, ok := l.cache.Get(key); ok {
		atomic.AddInt64(&l.hits, 1)
		return label
	}

	label := l.classifier.Label(r)
	_ = l.cache.Set(key, label, 0)
	atomic.AddInt64(&l.misses, 1)
	return label
}

func (l *cachedLabeler) stats() (hits, misses int64) {
	return atomic.LoadInt64(&l.hits), atomic.LoadInt64(&l.misses)
}
