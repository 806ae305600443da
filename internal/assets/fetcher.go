package assets

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"surveysync/internal/models"
	"surveysync/internal/providers"
	"surveysync/internal/transport"
)

// Poster schedules work on the main loop.
type Poster interface {
	Post(fn func()) bool
}

// Callback receives the resolved asset or the fetch failure. It always runs
// on the main loop.
type Callback func(asset *models.Asset, err error)

type FetcherInterface interface {
	Request(key string, cb Callback)
	Clear()
}

// Fetcher resolves images through the cache first and the transport second.
// Concurrent misses for one key share a single download.
type Fetcher struct {
	cache   CacheInterface
	client  transport.ClientInterface
	loop    Poster
	logger  providers.Logger
	timeout time.Duration
	group   singleflight.Group
}

func NewFetcher(cache CacheInterface, client transport.ClientInterface, loop Poster, logger providers.Logger, timeout time.Duration) FetcherInterface {
	return &Fetcher{
		cache:   cache,
		client:  client,
		loop:    loop,
		logger:  logger,
		timeout: timeout,
	}
}

// Request must be called on the main loop. A hit invokes cb before Request
// returns; a miss invokes it from a later main loop task.
func (f *Fetcher) Request(key string, cb Callback) {
	if asset, ok := f.cache.Get(key); ok {
		cb(asset, nil)
		return
	}

	go func() {
		v, err, shared := f.group.Do(key, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
			defer cancel()
			return f.client.FetchImage(ctx, key)
		})
		if shared {
			f.logger.Debugf(providers.TypeSync, "image fetch shared with a concurrent request")
		}

		var asset *models.Asset
		if err == nil {
			asset = v.(*models.Asset)
		}
		f.loop.Post(func() {
			if err != nil {
				f.logger.Warnf(providers.TypeSync, "image fetch failed: %v", err)
				cb(nil, err)
				return
			}
			f.cache.Put(key, asset)
			cb(asset, nil)
		})
	}()
}

// Clear empties the cache. Downloads already in flight still complete and
// populate it.
func (f *Fetcher) Clear() {
	f.cache.Clear()
}
