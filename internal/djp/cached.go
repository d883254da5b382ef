package djp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wisnuaga/e-faktur/internal/cache"
	"github.com/wisnuaga/e-faktur/internal/model"
)

// CachedSource decorates a Source with a cache keyed by validation URL.
// Reference records are stable for a given invoice, so re-validating the
// same document skips the network round trip entirely.
type CachedSource struct {
	next  Source
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps next with the given cache.
func NewCachedSource(next Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: c, ttl: ttl}
}

// Fetch serves from the cache when possible. Cache failures are ignored:
// a broken cache degrades to a live fetch, it never fails a validation.
func (s *CachedSource) Fetch(ctx context.Context, url string) (model.InvoiceFieldSet, error) {
	key := cache.Key(url)

	if data, found := s.cache.Get(key); found {
		var fields model.InvoiceFieldSet
		if err := json.Unmarshal(data, &fields); err == nil {
			return fields, nil
		}
		_ = s.cache.Delete(key)
	}

	fields, err := s.next.Fetch(ctx, url)
	if err != nil {
		return model.InvoiceFieldSet{}, err
	}

	if data, err := json.Marshal(fields); err == nil {
		_ = s.cache.Set(key, data, s.ttl)
	}
	return fields, nil
}
