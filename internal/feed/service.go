package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"playembed/internal/cache"
	"playembed/internal/metrics"
)

// Service resolves feed URLs into parsed feeds, reading through the cache
// when one is configured. A nil store disables caching entirely.
type Service struct {
	fetcher *Fetcher
	store   *cache.Store
	ttl     time.Duration
}

// NewService creates a feed resolution service. store may be nil.
func NewService(fetcher *Fetcher, store *cache.Store, ttl time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
	}
}

// Resolve returns the parsed feed at url, from cache when fresh.
// Fetch and parse failures surface as *FetchError.
func (s *Service) Resolve(ctx context.Context, url string) (*Feed, error) {
	if s.store != nil {
		cached, err := s.store.Get(ctx, url, s.ttl)
		if err != nil {
			// A broken cache should not take feed resolution down with it.
			log.Warn().Err(err).Str("url", url).Msg("Feed cache lookup failed, fetching upstream")
		} else if cached != nil {
			f, parseErr := s.fetcher.Parse(url, cached.Body)
			if parseErr == nil {
				return f, nil
			}
			log.Warn().Err(parseErr).Str("url", url).Msg("Cached feed document failed to parse, refetching")
		}
	}

	raw, err := s.fetcher.FetchRaw(ctx, url)
	if err != nil {
		metrics.FeedFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.FeedFetchesTotal.WithLabelValues("ok").Inc()

	f, err := s.fetcher.Parse(url, raw)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.Put(ctx, url, raw); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("Failed to cache feed document")
		}
	}

	return f, nil
}
