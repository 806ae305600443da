package di

import (
	"surveysync/internal/assets"
	"surveysync/internal/mainloop"
	"surveysync/internal/providers"
	"surveysync/internal/structures"
	"surveysync/internal/transport"
)

// provideFetcher bounds image downloads by the configured request timeout.
func provideFetcher(conf *structures.Config, cache assets.CacheInterface, client transport.ClientInterface, loop *mainloop.Loop, logger providers.Logger) assets.FetcherInterface {
	return assets.NewFetcher(cache, client, loop, logger, conf.Sync.RequestTimeout)
}
