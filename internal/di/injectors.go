//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"surveysync/internal"
	"surveysync/internal/assets"
	"surveysync/internal/banner"
	"surveysync/internal/controllers"
	"surveysync/internal/mainloop"
	"surveysync/internal/persistence"
	"surveysync/internal/polling"
	"surveysync/internal/postback"
	"surveysync/internal/providers"
	"surveysync/internal/services"
	"surveysync/internal/settings"
	"surveysync/internal/structures"
	"surveysync/internal/transport"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		settings.NewStore,
		transport.NewClient,
		mainloop.New,
		polling.NewPoller,
		assets.NewCache,
		provideFetcher,
		banner.NewStatePresenter,
		wire.Bind(new(banner.Presenter), new(*banner.StatePresenter)),
		wire.Bind(new(controllers.BannerView), new(*banner.StatePresenter)),

		services.NewSyncService,
		wire.Bind(new(postback.Resyncer), new(services.SyncServiceInterface)),
		wire.Bind(new(persistence.StateSource), new(services.SyncServiceInterface)),
		postback.NewValidator,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
