package catalogclient

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachingFetcher serves repeated queries from an expiring LRU.
// Failed fetches are not cached.
type CachingFetcher struct {
	next  Fetcher
	cache *expirable.LRU[string, *Page]
}

// NewCachingFetcher wraps next with a cache of size entries that expire after ttl.
func NewCachingFetcher(next Fetcher, size int, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		next:  next,
		cache: expirable.NewLRU[string, *Page](size, nil, ttl),
	}
}

// Fetch returns the cached page for q or loads and caches it.
func (f *CachingFetcher) Fetch(ctx context.Context, q Query) (*Page, error) {
	key := q.Key()
	if page, ok := f.cache.Get(key); ok {
		return page, nil
	}

	page, err := f.next.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	f.cache.Add(key, page)
	return page, nil
}

// Purge drops every cached page.
func (f *CachingFetcher) Purge() {
	f.cache.Purge()
}

// Len reports the number of cached pages.
func (f *CachingFetcher) Len() int {
	return f.cache.Len()
}
